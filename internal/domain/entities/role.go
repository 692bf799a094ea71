package entities

// Role representa o papel de um usuário no sistema
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleUser      Role = "user"
)

// IsValid verifica se o role é um dos valores conhecidos
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleModerator || r == RoleUser
}

// IsPrivileged verifica se o role tem poderes de moderação.
// Admin e moderator são equivalentes em todo o sistema: ambos podem
// moderar, editar e remover qualquer anúncio.
func (r Role) IsPrivileged() bool {
	return r == RoleAdmin || r == RoleModerator
}
