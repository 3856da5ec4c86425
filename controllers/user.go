package controllers

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/nourishnet/nourishnet-api/middleware"
	"github.com/nourishnet/nourishnet-api/services"
	"github.com/nourishnet/nourishnet-api/utils"
)

type UserController struct {
	Users  *services.UserService
	Cookie CookieConfig
}

func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	user, err := uc.Users.GetProfile(middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"profile": user})
}

func (uc *UserController) UpdateProfile(c *fiber.Ctx) error {
	var in services.ProfileInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	user, err := uc.Users.UpdateProfile(middleware.UserID(c), in)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Profile updated successfully", "profile": user})
}

func (uc *UserController) UpdatePreferences(c *fiber.Ctx) error {
	var in services.PreferencesInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	prefs, err := uc.Users.UpdatePreferences(middleware.UserID(c), in)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Preferences updated successfully", "preferences": prefs})
}

// UploadAvatar accepts a multipart "avatar" image
func (uc *UserController) UploadAvatar(c *fiber.Ctx) error {
	fh, err := c.FormFile("avatar")
	if err != nil {
		return utils.NewBadRequest("No file uploaded")
	}
	max := uc.Users.MaxBytes
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	var r io.Reader = f
	if max > 0 {
		r = io.LimitReader(f, max+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	user, err := uc.Users.UploadAvatar(c.UserContext(), middleware.UserID(c), data)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Avatar uploaded successfully", "profile": user, "avatarUrl": user.AvatarURL})
}

func (uc *UserController) DeleteAccount(c *fiber.Ctx) error {
	if err := uc.Users.DeleteAccount(middleware.UserID(c)); err != nil {
		return err
	}
	uc.Cookie.clear(c)
	return c.JSON(fiber.Map{"message": "Account deleted successfully"})
}
