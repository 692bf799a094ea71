package valueobjects

import "testing"

func TestNewEmail(t *testing.T) {
	t.Run("aceita email válido", func(t *testing.T) {
		email, err := NewEmail("fulano@example.com")
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if email.String() != "fulano@example.com" {
			t.Errorf("valor incorreto: %s", email.String())
		}
	})

	t.Run("normaliza caixa e espaços", func(t *testing.T) {
		email, err := NewEmail("  Fulano@Example.COM ")
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if email.String() != "fulano@example.com" {
			t.Errorf("email não normalizado: %s", email.String())
		}
	})

	t.Run("rejeita formatos inválidos", func(t *testing.T) {
		invalid := []string{
			"",
			"sem-arroba",
			"@example.com",
			"fulano@",
			"fulano@example",
			"fulano @example.com",
		}

		for _, input := range invalid {
			if _, err := NewEmail(input); err != ErrInvalidEmail {
				t.Errorf("entrada %q: esperava ErrInvalidEmail, obteve %v", input, err)
			}
		}
	})
}
