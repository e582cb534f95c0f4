package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/hospitalconnect/internal/clock"
	"github.com/terraincognita07/hospitalconnect/internal/models"
)

const (
	DefaultHandoffTokenTTL = 15 * time.Minute
	handoffTokenPurpose    = "doctor_handoff"
)

var (
	ErrHandoffTokenMissing        = errors.New("missing hand-off token")
	ErrHandoffTokenInvalid        = errors.New("invalid hand-off token")
	ErrHandoffTokenInvalidPurpose = errors.New("invalid hand-off token purpose")
	ErrHandoffTokenExpired        = errors.New("expired hand-off token")
	ErrHandoffTokenWrongClient    = errors.New("hand-off token issued to another client")
	ErrHandoffLoadFailed          = errors.New("load doctor hand-off failed")
	ErrHandoffSaveFailed          = errors.New("save doctor hand-off failed")
)

type HandoffClaims struct {
	DoctorID string `json:"did"`
	Purpose  string `json:"purpose"`
	jwt.RegisteredClaims
}

func BuildHandoffToken(secretKey []byte, clientID string, doctorID string, ttl time.Duration, now time.Time) (string, error) {
	if ttl <= 0 {
		ttl = DefaultHandoffTokenTTL
	}
	claims := HandoffClaims{
		DoctorID: doctorID,
		Purpose:  handoffTokenPurpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   clientID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey)
}

func ParseHandoffToken(secretKey []byte, rawToken string, clientID string, now time.Time) (*HandoffClaims, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, ErrHandoffTokenMissing
	}

	claims := &HandoffClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return secretKey, nil
	}, jwt.WithTimeFunc(func() time.Time { return now }))
	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, ErrHandoffTokenExpired
	}
	if err != nil || !token.Valid {
		return nil, ErrHandoffTokenInvalid
	}
	if claims.Purpose != handoffTokenPurpose {
		return nil, ErrHandoffTokenInvalidPurpose
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(now) {
		return nil, ErrHandoffTokenExpired
	}
	if claims.Subject != clientID {
		return nil, ErrHandoffTokenWrongClient
	}
	return claims, nil
}

type HandoffRepository interface {
	FindByClient(clientID string) (models.DoctorHandoff, bool, error)
	Upsert(handoff *models.DoctorHandoff) error
	DeleteUpdatedBefore(cutoff time.Time) (int64, error)
}

// HandoffService carries the doctor picked on the symptom checker over to
// the booking page. A token travels with the navigation; the stored slot is
// the fallback when the page is opened without one.
type HandoffService struct {
	handoffs  HandoffRepository
	secretKey []byte
	ttl       time.Duration
	clock     clock.Clock
}

func NewHandoffService(handoffs HandoffRepository, secretKey []byte, ttl time.Duration, clk clock.Clock) *HandoffService {
	return &HandoffService{
		handoffs:  handoffs,
		secretKey: secretKey,
		ttl:       ttl,
		clock:     clk,
	}
}

type HandoffResult struct {
	Doctor    models.DoctorRecord `json:"doctor"`
	Token     string              `json:"handoff_token"`
	ExpiresAt time.Time           `json:"expires_at"`
}

// Remember stores doctor in the client's hand-off slot and issues the
// navigation token for it.
func (service *HandoffService) Remember(clientID string, doctor models.DoctorRecord) (HandoffResult, error) {
	now := service.clock.Now()
	handoff := models.DoctorHandoff{
		ClientID:  clientID,
		DoctorID:  doctor.ID,
		Doctor:    doctor,
		UpdatedAt: now,
	}
	if err := service.handoffs.Upsert(&handoff); err != nil {
		return HandoffResult{}, fmt.Errorf("%w: %v", ErrHandoffSaveFailed, err)
	}

	ttl := service.ttl
	if ttl <= 0 {
		ttl = DefaultHandoffTokenTTL
	}
	token, err := BuildHandoffToken(service.secretKey, clientID, doctor.ID, ttl, now)
	if err != nil {
		return HandoffResult{}, fmt.Errorf("sign hand-off token: %w", err)
	}
	return HandoffResult{Doctor: doctor, Token: token, ExpiresAt: now.Add(ttl)}, nil
}

// ResolveDoctor picks the booking doctor: the token's doctor, else the
// stored slot, else the default doctor. A token that is present but invalid
// is an error rather than a silent fallback.
func (service *HandoffService) ResolveDoctor(clientID string, rawToken string) (models.DoctorRecord, error) {
	if strings.TrimSpace(rawToken) != "" {
		claims, err := ParseHandoffToken(service.secretKey, rawToken, clientID, service.clock.Now())
		if err != nil {
			return models.DoctorRecord{}, err
		}
		doctor, ok := models.FindDoctor(claims.DoctorID)
		if !ok {
			return models.DoctorRecord{}, ErrDoctorNotFound
		}
		return doctor, nil
	}

	handoff, found, err := service.handoffs.FindByClient(clientID)
	if err != nil {
		return models.DoctorRecord{}, fmt.Errorf("%w: %v", ErrHandoffLoadFailed, err)
	}
	if found {
		if doctor, ok := models.FindDoctor(handoff.DoctorID); ok {
			return doctor, nil
		}
	}
	return models.DefaultBookingDoctor(), nil
}

func (service *HandoffService) PurgeStale(maxAge time.Duration) (int64, error) {
	return service.handoffs.DeleteUpdatedBefore(service.clock.Now().Add(-maxAge))
}
