package signlink

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"club-notification/internal/errs"
)

const (
	confirmPath = "/confirm"
	tokenParam  = "token"
)

// Claims 确认链接中携带的训练课和运动员
type Claims struct {
	SessionID int64 `json:"sid"`
	AthleteID int64 `json:"aid"`
	jwt.RegisteredClaims
}

// Signer 生成和校验训练课确认链接
type Signer struct {
	key     []byte
	baseURL string
	ttl     time.Duration
	now     func() time.Time
}

// NewSigner ttl 小于等于 0 表示链接不过期
func NewSigner(key, baseURL string, ttl time.Duration) *Signer {
	return &Signer{
		key:     []byte(key),
		baseURL: strings.TrimRight(baseURL, "/"),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Sign 生成 HS256 令牌
func (s *Signer) Sign(sessionID, athleteID int64) (string, error) {
	claims := Claims{
		SessionID: sessionID,
		AthleteID: athleteID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(s.now()),
		},
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(s.now().Add(s.ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
}

// ConfirmationURL 形如 <base>/confirm?token=<jwt>
func (s *Signer) ConfirmationURL(sessionID, athleteID int64) (string, error) {
	token, err := s.Sign(sessionID, athleteID)
	if err != nil {
		return "", err
	}
	return s.baseURL + confirmPath + "?" + url.Values{tokenParam: {token}}.Encode(), nil
}

// Verify 校验令牌并取出训练课和运动员
func (s *Signer) Verify(token string) (Claims, error) {
	var claims Claims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	tk, err := parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	})
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", errs.ErrInvalidLinkToken, err)
	}
	if !tk.Valid || claims.SessionID <= 0 || claims.AthleteID <= 0 {
		return Claims{}, fmt.Errorf("%w: %w", errs.ErrInvalidLinkToken, errors.New("令牌缺少训练课或运动员"))
	}
	return claims, nil
}
