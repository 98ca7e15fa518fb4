package auth

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role определяет, что пользователю доступно на доске.
type Role string

const (
	RoleCandidate Role = "candidate"
	RoleEmployer  Role = "employer"
	RoleRecruiter Role = "recruiter"
	RoleAdmin     Role = "admin"
)

// ParseRole принимает любой регистр; пустое значение означает candidate.
func ParseRole(s string) (Role, bool) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case "":
		return RoleCandidate, true
	case RoleCandidate, RoleEmployer, RoleRecruiter, RoleAdmin:
		return r, true
	default:
		return "", false
	}
}

// User — доменная сущность пользователя системы.
// У соискателя id пользователя совпадает с id профиля.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// Principal — аутентифицированный вызывающий, каким его видят use case.
type Principal struct {
	UserID uuid.UUID
	Role   Role
}

func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }

// CanPostJobs сообщает, может ли вызывающий создавать и править вакансии.
func (p Principal) CanPostJobs() bool {
	switch p.Role {
	case RoleEmployer, RoleRecruiter, RoleAdmin:
		return true
	}
	return false
}

// ActsFor сообщает, является ли вызывающий самим соискателем или админом. Права рекрутера проверяет candidate.Authorize.
func (p Principal) ActsFor(candidateID uuid.UUID) bool {
	return p.IsAdmin() || p.UserID == candidateID
}

// ActsForPoster сообщает, может ли вызывающий смотреть аналитику по вакансиям автора posterID.
func (p Principal) ActsForPoster(posterID uuid.UUID) bool {
	return p.IsAdmin() || (p.CanPostJobs() && p.UserID == posterID)
}
