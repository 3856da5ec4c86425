package services

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/nourishnet/nourishnet-api/metrics"
	"github.com/nourishnet/nourishnet-api/models"
	"github.com/nourishnet/nourishnet-api/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDonors(t *testing.T, gdb *gorm.DB) *DonorService {
	return &DonorService{DB: gdb, Gateway: NewSimulatedGateway(0), Metrics: metrics.New()}
}

func cardDonation(amount float64) DonateInput {
	return DonateInput{
		Amount:        amount,
		PaymentMethod: "card",
		CardDetails: &CardDetails{
			CardNumber:     visaTest,
			CardholderName: "Ada Lovelace",
			ExpiryMonth:    12,
			ExpiryYear:     time.Now().Year() + 2,
			CVV:            "123",
		},
	}
}

func TestDonateRecordsTransactionBalanceAndDonation(t *testing.T) {
	gdb := newTestDB(t)
	s := newTestDonors(t, gdb)
	u := seedUser(t, gdb, "d@x.com", models.RoleDonor)

	res, err := s.Donate(context.Background(), u.ID, cardDonation(26))
	require.NoError(t, err)
	assert.Equal(t, 26.0, res.Transaction.Amount)
	assert.Regexp(t, regexp.MustCompile(`^Donation via card - Transaction ID: TXN-`), res.Transaction.Description)
	assert.Equal(t, "1111", res.PaymentDetails.Last4)

	balance, err := s.Balance(u.ID)
	require.NoError(t, err)
	assert.Equal(t, 26.0, balance)

	var donation models.Donation
	require.NoError(t, gdb.Where("user_id = ?", u.ID).First(&donation).Error)
	assert.Equal(t, "General Donation", donation.FoodType)
	assert.Equal(t, 10, donation.Quantity)
	assert.Equal(t, models.DonationPending, donation.Status)
}

func TestDonateValidation(t *testing.T) {
	gdb := newTestDB(t)
	s := newTestDonors(t, gdb)
	u := seedUser(t, gdb, "d@x.com", models.RoleDonor)

	_, err := s.Donate(context.Background(), u.ID, DonateInput{Amount: 0.5, PaymentMethod: "card"})
	appErr, ok := utils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "Amount must be at least $1", appErr.Message)

	_, err = s.Donate(context.Background(), u.ID, DonateInput{Amount: 5, PaymentMethod: "bitcoin"})
	appErr, ok = utils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "Invalid payment method", appErr.Message)
}

func TestDonatePaymentFailureWritesNothing(t *testing.T) {
	gdb := newTestDB(t)
	s := newTestDonors(t, gdb)
	u := seedUser(t, gdb, "d@x.com", models.RoleDonor)

	in := cardDonation(10)
	in.CardDetails.CardNumber = "4111111111111112"
	_, err := s.Donate(context.Background(), u.ID, in)
	appErr, ok := utils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "Payment processing failed", appErr.Message)
	assert.Equal(t, "Invalid card number", appErr.Detail)

	var count int64
	gdb.Model(&models.Transaction{}).Count(&count)
	assert.Zero(t, count)
}

func TestDonateRollsBackOnLateFailure(t *testing.T) {
	gdb := newTestDB(t)
	s := newTestDonors(t, gdb)
	u := seedUser(t, gdb, "d@x.com", models.RoleDonor)
	require.NoError(t, gdb.Migrator().DropTable(&models.Donation{}))

	_, err := s.Donate(context.Background(), u.ID, cardDonation(40))
	require.Error(t, err)
	_, isApp := utils.AsAppError(err)
	assert.False(t, isApp)

	var count int64
	require.NoError(t, gdb.Model(&models.Transaction{}).Count(&count).Error)
	assert.Zero(t, count)

	balance, err := s.Balance(u.ID)
	require.NoError(t, err)
	assert.Zero(t, balance)
}

func TestDonorStats(t *testing.T) {
	gdb := newTestDB(t)
	s := newTestDonors(t, gdb)
	u := seedUser(t, gdb, "d@x.com", models.RoleDonor)

	stats, err := s.Stats(u.ID)
	require.NoError(t, err)
	assert.Equal(t, DonorStats{}, *stats)

	_, err = s.Donate(context.Background(), u.ID, cardDonation(10))
	require.NoError(t, err)
	_, err = s.Donate(context.Background(), u.ID, DonateInput{Amount: 20, PaymentMethod: "paypal"})
	require.NoError(t, err)

	// No completed donations yet, so the average stays zero.
	stats, err = s.Stats(u.ID)
	require.NoError(t, err)
	assert.Equal(t, 30.0, stats.TotalDonated)
	assert.Zero(t, stats.MealsFunded)
	assert.Zero(t, stats.AvgCostPerMeal)

	require.NoError(t, gdb.Model(&models.Donation{}).Where("user_id = ?", u.ID).
		Update("status", models.DonationCompleted).Error)
	stats, err = s.Stats(u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.MealsFunded)
	assert.Equal(t, 15.0, stats.AvgCostPerMeal)
}

func TestAvgCostPerMealNeverNegative(t *testing.T) {
	assert.Zero(t, avgCostPerMeal(100, 0))
	assert.Zero(t, avgCostPerMeal(-5, 3))
	assert.Equal(t, 33.33, avgCostPerMeal(100, 3))
}

func TestTransactionsPaginated(t *testing.T) {
	gdb := newTestDB(t)
	s := newTestDonors(t, gdb)
	u := seedUser(t, gdb, "d@x.com", models.RoleDonor)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		require.NoError(t, gdb.Create(&models.Transaction{
			UserID: u.ID, Type: models.TransactionDeposit, Amount: float64(i + 1), CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}).Error)
	}

	rows, total, err := s.Transactions(u.ID, utils.Page{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, rows, 2)
	assert.Equal(t, 3.0, rows[0].Amount)
	assert.Equal(t, "NourishNet Platform", rows[0].Recipient)
	assert.Equal(t, "Completed", rows[0].Status)

	rows, _, err = s.Transactions(u.ID, utils.Page{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 1.0, rows[0].Amount)
}

func TestBalanceUnknownUser(t *testing.T) {
	gdb := newTestDB(t)
	s := newTestDonors(t, gdb)

	_, err := s.Balance("missing")
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}

func TestBalanceDatabaseError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT "balance" FROM "users"`).WillReturnError(errors.New("connection reset"))

	_, err = (&DonorService{DB: gdb}).Balance("user-1")
	require.Error(t, err)
	_, isApp := utils.AsAppError(err)
	assert.False(t, isApp)
	assert.NoError(t, mock.ExpectationsWereMet())
}
