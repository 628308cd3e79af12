package identity

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// authClient is the subset of *auth.Client the gateway uses.
type authClient interface {
	CreateUser(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error)
	GetUser(ctx context.Context, uid string) (*auth.UserRecord, error)
}

// Firebase creates accounts in Firebase Authentication.
type Firebase struct {
	client      authClient
	countryCode string
}

// NewFirebase initialises the Firebase app from a service account file.
func NewFirebase(ctx context.Context, credFile, countryCode string) (*Firebase, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credFile))
	if err != nil {
		return nil, fmt.Errorf("firebase init: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth client: %w", err)
	}
	return newFirebase(client, countryCode), nil
}

func newFirebase(client authClient, countryCode string) *Firebase {
	return &Firebase{client: client, countryCode: countryCode}
}

// Claim returns the phone number in E.164 form.
func (f *Firebase) Claim(phone string) string {
	return f.countryCode + phone
}

func (f *Firebase) CreateAccount(ctx context.Context, uid, phone string) Result {
	params := (&auth.UserToCreate{}).UID(uid).PhoneNumber(f.Claim(phone))
	if _, err := f.client.CreateUser(ctx, params); err != nil {
		return failure(fmt.Errorf("create firebase user %s: %w", uid, err))
	}
	return success()
}

func (f *Firebase) VerifyAccount(ctx context.Context, uid, phone string) Result {
	rec, err := f.client.GetUser(ctx, uid)
	if err != nil {
		return failure(fmt.Errorf("get firebase user %s: %w", uid, err))
	}
	if rec.UserInfo == nil || rec.PhoneNumber != f.Claim(phone) {
		return failure(ErrPhoneMismatch)
	}
	return success()
}

func (f *Firebase) Enabled() bool { return true }
