package mocks

import "github.com/mabego/galeria/internal/models"

type AdminModel struct{}

func (m *AdminModel) Insert(name, email, password string) error {
	switch email {
	case "dupe@example.com":
		return models.ErrDuplicateEmail
	default:
		return nil
	}
}

func (m *AdminModel) Authenticate(email, password string) (int, error) {
	if email == "admin@example.com" && password == "pa$$word" {
		return 1, nil
	}

	return 0, models.ErrInvalidCredentials
}

// Exists reports only the admin with ID 1 as present.
func (m *AdminModel) Exists(id int) (bool, error) {
	return id == 1, nil
}
