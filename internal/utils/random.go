package utils

import (
	"fmt"
	"math/rand"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/gabibenitezzzz0011/PROYECTO-REFRIS-sub000/internal/domain"
)

var commonSurnames = []string{
	"Gomez", "Rodriguez", "Fernandez", "Lopez", "Martinez", "Gonzalez",
	"Perez", "Sanchez", "Diaz", "Alvarez", "Romero", "Torres",
	"Ruiz", "Acosta", "Benitez", "Medina", "Herrera", "Aguirre",
}

var commonGivenNames = []string{
	"Maria", "Juan", "Carlos", "Lucia", "Sofia", "Mateo", "Valentina",
	"Santiago", "Camila", "Agustin", "Julieta", "Facundo", "Micaela",
	"Nicolas", "Florencia", "Tomas", "Rocio", "Ezequiel",
}

func GenerateRandomAgentName() string {
	given := commonGivenNames[rand.Intn(len(commonGivenNames))]
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	return given + " " + surname
}

var roles = []domain.Role{
	domain.RoleAnalyst,
	domain.RoleSupervisor,
	domain.RoleAdmin,
}

func GenerateRandomRole() domain.Role {
	return roles[rand.Intn(len(roles))]
}

var digits = "0123456789"

func GenerateUsernameFromFullName(fullName string) string {
	parts := strings.Fields(strings.ToLower(fullName))
	username := ""
	for _, part := range parts {
		length := rand.Intn(len(part)) + 1
		username += part[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomUser(password string, emailDomainName string) (*domain.User, error) {
	fullName := GenerateRandomAgentName()
	username := GenerateUsernameFromFullName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
		Role:         GenerateRandomRole(),
	}

	return user, nil
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}

// GenerateRandomShift returns a plausible demo shift for the seed:
// full-day or half-day, always on a working-hours grid.
func GenerateRandomShift(agentName, date string) domain.ShiftRecord {
	startHour := rand.Intn(6) + 6 // 06..11
	duration := 4
	if rand.Intn(2) == 0 {
		duration = 8
	}

	return domain.ShiftRecord{
		AgentName: agentName,
		Date:      date,
		DayKind:   domain.DayKindHoliday,
		StartTime: fmt.Sprintf("%02d:00", startHour),
		EndTime:   fmt.Sprintf("%02d:00", startHour+duration),
		Motive:    domain.MotiveNormalShift,
	}
}
