package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/bnema/portal-cli/internal/domain"
	"github.com/bnema/portal-cli/internal/graphql"
	"github.com/bnema/portal-cli/internal/ports"
	"golang.org/x/sync/errgroup"
)

// PendingVerificationKey holds the user id a registration is waiting to
// confirm with an OTP.
const PendingVerificationKey = "pendingVerification"

var (
	sessionPolicy = RetryPolicy{Name: "get_session", MaxRetries: 2, BaseDelay: time.Second, Idempotent: true}
	userPolicy    = RetryPolicy{Name: "get_user", MaxRetries: 2, BaseDelay: time.Second, Idempotent: true}
	listPolicy    = RetryPolicy{Name: "list_users", MaxRetries: 3, BaseDelay: 2 * time.Second, Idempotent: true}
)

func singleAttempt(name string) RetryPolicy {
	return RetryPolicy{Name: name, BaseDelay: time.Second}
}

type ServiceConfig struct {
	// UserServiceURL is the endpoint of USER_SVC operations. Empty means the
	// gateway default.
	UserServiceURL string
	Sleeper        ports.Sleeper
	Logger         *slog.Logger
}

type Service struct {
	gateway  ports.Gateway
	store    ports.SessionStore
	cookies  ports.CookieJar
	resolver SessionResolver
	sleeper  ports.Sleeper
	logger   *slog.Logger

	userServiceURL string
	listSeq        atomic.Uint64
}

func NewService(gateway ports.Gateway, store ports.SessionStore, cookies ports.CookieJar, resolver SessionResolver, cfg ServiceConfig) *Service {
	if cfg.Sleeper == nil {
		cfg.Sleeper = ports.SystemClock{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Service{
		gateway:        gateway,
		store:          store,
		cookies:        cookies,
		resolver:       resolver,
		sleeper:        cfg.Sleeper,
		logger:         cfg.Logger,
		userServiceURL: strings.TrimSpace(cfg.UserServiceURL),
	}
}

type loginPayload struct {
	domain.OperationResult
	Token  string `json:"token"`
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

type registrationPayload struct {
	domain.OperationResult
	ID string `json:"id"`
}

type sessionPayload struct {
	domain.OperationResult
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

type userPayload struct {
	domain.OperationResult
	User *domain.User `json:"user"`
}

type usersPayload struct {
	domain.OperationResult
	Total int           `json:"total"`
	Users []domain.User `json:"users"`
}

// Login exchanges credentials for a session and persists it.
func (s *Service) Login(ctx context.Context, userName string, password string) (domain.SessionRecord, error) {
	input := graphql.LoginInput{UserName: strings.TrimSpace(userName), PassWord: password}

	payload, err := FetchWithRetry(ctx, func(ctx context.Context) (loginPayload, error) {
		var payload loginPayload
		err := s.call(ctx, input, "", "", &payload)
		return payload, err
	}, s.policy(singleAttempt("login")))
	if err != nil {
		return domain.SessionRecord{}, err
	}
	if err := expectStatus(graphql.FieldLogin, payload.OperationResult, http.StatusOK); err != nil {
		return domain.SessionRecord{}, err
	}
	if strings.TrimSpace(payload.Token) == "" {
		return domain.SessionRecord{}, fmt.Errorf("%s: response carried no token", graphql.FieldLogin)
	}

	record := domain.SessionRecord{
		ID:       payload.Token,
		UserID:   payload.UserID,
		Role:     string(domain.ParseRole(payload.Role)),
		UserName: input.UserName,
	}
	if err := s.saveSession(ctx, record); err != nil {
		return domain.SessionRecord{}, err
	}

	s.logger.Info("logged in", "user", input.UserName, "role", record.Role)
	return record, nil
}

// Register creates an account and remembers its id for VerifyOTP.
func (s *Service) Register(ctx context.Context, input graphql.RegistrationInput) (string, error) {
	payload, err := FetchWithRetry(ctx, func(ctx context.Context) (registrationPayload, error) {
		var payload registrationPayload
		err := s.call(ctx, input, "", "", &payload)
		return payload, err
	}, s.policy(singleAttempt("registration")))
	if err != nil {
		return "", err
	}

	if payload.Status == http.StatusConflict {
		return "", fmt.Errorf("%s: %w", resultMessage(payload.OperationResult), domain.ErrConflict)
	}
	if err := expectStatus(graphql.FieldRegistration, payload.OperationResult, http.StatusCreated); err != nil {
		return "", err
	}

	if payload.ID != "" {
		if err := s.store.Put(ctx, PendingVerificationKey, payload.ID); err != nil {
			return "", fmt.Errorf("remember pending verification: %w", err)
		}
	}

	return payload.ID, nil
}

// VerifyOTP confirms a registration. An empty userID uses the id left by
// the last Register call.
func (s *Service) VerifyOTP(ctx context.Context, userID string, otp int) (domain.OperationResult, error) {
	userID = strings.TrimSpace(userID)
	fromPending := userID == ""
	if fromPending {
		pending, err := s.store.Get(ctx, PendingVerificationKey)
		if err != nil {
			if errors.Is(err, domain.ErrKeyNotFound) {
				return domain.OperationResult{}, errors.New("no pending registration to verify")
			}
			return domain.OperationResult{}, fmt.Errorf("read pending verification: %w", err)
		}
		userID = pending
	}

	input := graphql.OTPVerifyInput{ID: userID, OTP: otp}
	result, err := FetchWithRetry(ctx, func(ctx context.Context) (domain.OperationResult, error) {
		var result domain.OperationResult
		err := s.call(ctx, input, "", "", &result)
		return result, err
	}, s.policy(singleAttempt("otp_verify")))
	if err != nil {
		return domain.OperationResult{}, err
	}
	if err := expectStatus(graphql.FieldOTPVerify, result, http.StatusOK); err != nil {
		return result, err
	}

	if fromPending {
		if err := s.store.Delete(ctx, PendingVerificationKey); err != nil {
			s.logger.Warn("forget pending verification", "error", err)
		}
	}

	return result, nil
}

// Logout ends the remote session, then clears every local copy of it.
func (s *Service) Logout(ctx context.Context) (domain.OperationResult, error) {
	credential, err := s.credential(ctx)
	if err != nil {
		return domain.OperationResult{}, err
	}

	input := graphql.LogoutInput{ID: credential.Token}
	result, err := FetchWithRetry(ctx, func(ctx context.Context) (domain.OperationResult, error) {
		var result domain.OperationResult
		err := s.call(ctx, input, credential.Token, "", &result)
		return result, err
	}, s.policy(singleAttempt("logout")))
	if err != nil {
		return domain.OperationResult{}, err
	}
	if err := expectStatus(graphql.FieldLogout, result, http.StatusOK); err != nil {
		return result, err
	}

	if err := s.ClearLocalSession(ctx); err != nil {
		return result, err
	}

	return result, nil
}

func (s *Service) ClearLocalSession(ctx context.Context) error {
	var errs []error
	if err := s.store.Delete(ctx, domain.SessionStorageKey); err != nil {
		errs = append(errs, fmt.Errorf("delete stored session: %w", err))
	}
	if s.cookies != nil {
		if err := s.cookies.Clear(ctx); err != nil {
			errs = append(errs, fmt.Errorf("clear cookies: %w", err))
		}
	}
	return errors.Join(errs...)
}

// GetSession asks the remote service who the current token belongs to.
func (s *Service) GetSession(ctx context.Context) (domain.SessionRecord, error) {
	credential, err := s.credential(ctx)
	if err != nil {
		return domain.SessionRecord{}, err
	}

	return s.getSession(ctx, credential)
}

func (s *Service) getSession(ctx context.Context, credential *domain.SessionCredential) (domain.SessionRecord, error) {
	input := graphql.SessionByIDInput{ID: credential.Token}
	payload, err := FetchWithRetry(ctx, func(ctx context.Context) (sessionPayload, error) {
		var payload sessionPayload
		if err := s.call(ctx, input, credential.Token, "", &payload); err != nil {
			return payload, err
		}
		return payload, expectStatus(graphql.FieldSessionByID, payload.OperationResult, http.StatusOK)
	}, s.policy(sessionPolicy))
	if err != nil {
		return domain.SessionRecord{}, err
	}

	return domain.SessionRecord{
		ID:     credential.Token,
		UserID: payload.UserID,
		Role:   string(domain.ParseRole(payload.Role)),
	}, nil
}

func (s *Service) GetUser(ctx context.Context, id domain.UserID) (domain.User, error) {
	credential, err := s.credential(ctx)
	if err != nil {
		return domain.User{}, err
	}

	return s.getUser(ctx, credential, id)
}

func (s *Service) getUser(ctx context.Context, credential *domain.SessionCredential, id domain.UserID) (domain.User, error) {
	input := graphql.UserByIDInput{ID: string(id)}
	return FetchWithRetry(ctx, func(ctx context.Context) (domain.User, error) {
		var payload userPayload
		if err := s.call(ctx, input, credential.Token, s.userServiceURL, &payload); err != nil {
			return domain.User{}, err
		}
		if payload.User == nil {
			return domain.User{}, fmt.Errorf("user %q: %w", id, domain.ErrUserNotFound)
		}
		return *payload.User, nil
	}, s.policy(userPolicy))
}

// Profile is the dashboard view: the session and the user it belongs to.
type Profile struct {
	Session domain.SessionRecord
	User    domain.User
}

func (s *Service) Profile(ctx context.Context) (Profile, error) {
	credential, err := s.credential(ctx)
	if err != nil {
		return Profile{}, err
	}

	userID := credential.UserIDOrEmpty()
	if userID == "" {
		session, err := s.getSession(ctx, credential)
		if err != nil {
			return Profile{}, fmt.Errorf("load session: %w", err)
		}
		if session.UserID == "" {
			return Profile{}, fmt.Errorf("session has no user id: %w", domain.ErrUserNotFound)
		}
		user, err := s.getUser(ctx, credential, domain.UserID(session.UserID))
		if err != nil {
			return Profile{}, fmt.Errorf("load user: %w", err)
		}
		return Profile{Session: session, User: user}, nil
	}

	var profile Profile
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		session, err := s.getSession(groupCtx, credential)
		if err != nil {
			return fmt.Errorf("load session: %w", err)
		}
		profile.Session = session
		return nil
	})
	group.Go(func() error {
		user, err := s.getUser(groupCtx, credential, domain.UserID(userID))
		if err != nil {
			return fmt.Errorf("load user: %w", err)
		}
		profile.User = user
		return nil
	})
	if err := group.Wait(); err != nil {
		return Profile{}, err
	}

	return profile, nil
}

// ListUsers fetches one page of users. A call overtaken by a newer
// ListUsers call returns domain.ErrStaleResponse instead of its page.
func (s *Service) ListUsers(ctx context.Context, page int, limit int, search string) (domain.UserPage, error) {
	seq := s.listSeq.Add(1)

	credential, err := s.credential(ctx)
	if err != nil {
		return domain.UserPage{}, err
	}

	input := graphql.UsersInput{Page: page, Limit: limit, Search: strings.TrimSpace(search)}
	payload, err := FetchWithRetry(ctx, func(ctx context.Context) (usersPayload, error) {
		var payload usersPayload
		if err := s.call(ctx, input, credential.Token, s.userServiceURL, &payload); err != nil {
			return payload, err
		}
		return payload, expectStatus(graphql.FieldUsers, payload.OperationResult, http.StatusOK)
	}, s.policy(listPolicy))

	if s.listSeq.Load() != seq {
		return domain.UserPage{}, domain.ErrStaleResponse
	}
	if err != nil {
		return domain.UserPage{}, err
	}

	return domain.UserPage{Users: payload.Users, Page: page, Limit: limit, Total: payload.Total}, nil
}

// UpdateUser sends the fields that differ between original and edited.
func (s *Service) UpdateUser(ctx context.Context, original domain.User, edited domain.User) (domain.UserPatch, error) {
	patch := domain.DiffUsers(original, edited)
	if patch.Empty() {
		return patch, domain.ErrNothingToUpdate
	}

	credential, err := s.credential(ctx)
	if err != nil {
		return nil, err
	}

	input := graphql.NewUpdateUserInput(original.ID, patch)
	result, err := FetchWithRetry(ctx, func(ctx context.Context) (domain.OperationResult, error) {
		var result domain.OperationResult
		err := s.call(ctx, input, credential.Token, "", &result)
		return result, err
	}, s.policy(singleAttempt("update_user")))
	if err != nil {
		return nil, err
	}
	if err := expectStatus(graphql.FieldUpdateUser, result, http.StatusCreated); err != nil {
		return nil, err
	}

	return patch, nil
}

func (s *Service) DeleteUser(ctx context.Context, id domain.UserID) (domain.OperationResult, error) {
	credential, err := s.credential(ctx)
	if err != nil {
		return domain.OperationResult{}, err
	}

	input := graphql.DeleteUserInput{ID: string(id)}
	result, err := FetchWithRetry(ctx, func(ctx context.Context) (domain.OperationResult, error) {
		var result domain.OperationResult
		err := s.call(ctx, input, credential.Token, "", &result)
		return result, err
	}, s.policy(singleAttempt("delete_user")))
	if err != nil {
		return domain.OperationResult{}, err
	}
	if err := expectStatus(graphql.FieldDeleteUser, result, http.StatusOK); err != nil {
		return result, err
	}

	return result, nil
}

func (s *Service) credential(ctx context.Context) (*domain.SessionCredential, error) {
	credential, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	if !credential.Valid() {
		return nil, domain.ErrSessionRequired
	}
	return credential, nil
}

func (s *Service) saveSession(ctx context.Context, record domain.SessionRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.store.Put(ctx, domain.SessionStorageKey, string(data)); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (s *Service) policy(policy RetryPolicy) RetryPolicy {
	policy.Sleeper = s.sleeper
	return policy
}

func (s *Service) call(ctx context.Context, op graphql.Operation, token string, targetURL string, out any) error {
	query, err := graphql.Build(op)
	if err != nil {
		return err
	}

	headers := map[string]string{"Content-Type": "application/json"}
	if token != "" {
		headers["authorization"] = token
	}

	resp, err := s.gateway.Send(ctx, domain.RequestEnvelope{Query: query, Headers: headers, TargetURL: targetURL})
	if err != nil {
		return err
	}

	return graphql.DecodeField(resp, op.Document().Field, out)
}

func expectStatus(operation string, result domain.OperationResult, want int) error {
	if result.Status == want {
		return nil
	}
	return &domain.RejectedError{Operation: operation, Result: result}
}

func resultMessage(result domain.OperationResult) string {
	if result.Message != "" {
		return result.Message
	}
	if result.Error != "" {
		return result.Error
	}
	return "resource already exists"
}
