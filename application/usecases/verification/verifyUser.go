package verification_usecases

import (
	"context"
	"sync"
	"time"

	"veriface.io/application/repository"
	"veriface.io/entities"
	"veriface.io/infrastructure/auth"
	"veriface.io/infrastructure/biometric"
	"veriface.io/infrastructure/biometric/types"
	"veriface.io/infrastructure/env"
	"veriface.io/infrastructure/logger"
	"veriface.io/infrastructure/media_store"
)

var verifierOnce = sync.Once{}

var verifier *biometric.Verifier

// Login uses the lenient face tier so imperfect capture conditions do not
// hard-fail a live session.
func loginVerifier() *biometric.Verifier {
	verifierOnce.Do(func() {
		verifier = &biometric.Verifier{
			Users:    &userStore{},
			Assets:   media_store.Store,
			Deepfake: biometric.Screen,
			Face:     biometric.FaceEngine,
			Password: biometric.PasswordEngine,
			Voice:    biometric.VoiceEngine,
			FaceTier: types.TierLenient,
		}
	})
	return verifier
}

type userStore struct{}

func (s *userStore) GetUser(ctx context.Context, username string) (*entities.User, error) {
	user, err := repository.UserRepo().FindOneByField(map[string]interface{}{
		"username": username,
	})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, types.ErrUserNotFound
	}
	return user, nil
}

// VerifyUserUseCase runs the gate sequence and, on success, records the
// login and issues a session token.
func VerifyUserUseCase(ctx context.Context, request *types.VerificationRequest) (*types.VerificationResult, *string) {
	result := loginVerifier().VerifyUser(ctx, request)
	if !result.OverallSuccess {
		return result, nil
	}

	updated, err := repository.UserRepo().UpdatePartialByFilter(map[string]interface{}{
		"username": request.Username,
	}, map[string]interface{}{
		"lastLogin": time.Now(),
	})
	if err != nil || !updated {
		logger.Warning("could not record login time", logger.LoggerOptions{
			Key:  "username",
			Data: request.Username,
		}, logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
	}

	token, err := auth.GenerateAuthToken(request.Username,
		time.Duration(env.GetInt("SESSION_TTL_MINUTES", 60))*time.Minute)
	if err != nil {
		logger.Error("failed to issue session token", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return result, nil
	}
	return result, &token
}
