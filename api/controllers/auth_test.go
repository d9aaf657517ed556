package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	authsvc "github.com/livemart/livemart-backend/internal/auth"
	"github.com/livemart/livemart-backend/internal/users"
	pkgerrors "github.com/livemart/livemart-backend/pkg/errors"
)

type stubAuthService struct {
	loginResult  *authsvc.AuthResponse
	loginErr     error
	verifyResult *authsvc.VerifyCodeResponse
	verifyErr    error
}

func (s stubAuthService) Login(ctx context.Context, req authsvc.LoginRequest) (*authsvc.AuthResponse, error) {
	return s.loginResult, s.loginErr
}

func (s stubAuthService) VerifyCode(ctx context.Context, req authsvc.VerifyCodeRequest) (*authsvc.VerifyCodeResponse, error) {
	return s.verifyResult, s.verifyErr
}

type stubRegisterService struct {
	result *authsvc.AuthResponse
	err    error
}

func (s stubRegisterService) Register(ctx context.Context, req authsvc.RegisterRequest) (*authsvc.AuthResponse, error) {
	return s.result, s.err
}

func TestAuthLoginSuccess(t *testing.T) {
	user := &users.UserDTO{ID: uuid.New(), Email: "shopper@example.com"}
	handler := AuthLogin(stubAuthService{loginResult: &authsvc.AuthResponse{AccessToken: "token-123", User: user}}, nil)

	body := bytes.NewBufferString(`{"email":"shopper@example.com","password":"hunter2-hunter2"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data authsvc.AuthResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.AccessToken != "token-123" {
		t.Fatalf("unexpected token: %s", envelope.Data.AccessToken)
	}
	if envelope.Data.User == nil || envelope.Data.User.ID != user.ID {
		t.Fatalf("unexpected user payload: %+v", envelope.Data.User)
	}
}

func TestAuthLoginBadCredentials(t *testing.T) {
	handler := AuthLogin(stubAuthService{loginErr: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")}, nil)

	body := bytes.NewBufferString(`{"email":"shopper@example.com","password":"wrong-password-1"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthLoginRejectsMalformedBody(t *testing.T) {
	handler := AuthLogin(stubAuthService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(`{"email":`))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAuthRegisterConflict(t *testing.T) {
	handler := AuthRegister(stubRegisterService{err: pkgerrors.New(pkgerrors.CodeConflict, "email already registered")}, nil)

	body := bytes.NewBufferString(`{"email":"taken@example.com","password":"hunter2-hunter2","name":"Shopper","phone":"+15550001111","role":"customer"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", body)
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", resp.Code)
	}
}

func TestAuthVerifyOTPWrongCodeStays200(t *testing.T) {
	handler := AuthVerifyOTP(stubAuthService{verifyResult: &authsvc.VerifyCodeResponse{Verified: false, Message: "invalid code"}}, nil)

	body := bytes.NewBufferString(`{"email":"shopper@example.com","code":"000000"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/verify-otp", body)
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data authsvc.VerifyCodeResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Verified {
		t.Fatal("expected verified=false for a wrong code")
	}
}

func TestAuthLoginNilService(t *testing.T) {
	handler := AuthLogin(nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(`{}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", resp.Code)
	}
}
