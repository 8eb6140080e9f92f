package dto

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"`
	ExpiresIn    int             `json:"expires_in"`
	User         UsuarioResponse `json:"user"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type CrearUsuarioRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Nombre   string `json:"nombre"   validate:"required,min=2"`
	Password string `json:"password" validate:"required,min=6"`
	Rol      string `json:"rol"      validate:"required,oneof=super_administrador administrador vendedor cliente sistemas"`
	Telefono string `json:"telefono"`
	Imagen   string `json:"imagen"`
}

type ActualizarUsuarioRequest struct {
	Nombre   *string `json:"nombre"   validate:"omitempty,min=2"`
	Password *string `json:"password" validate:"omitempty,min=6"`
	Rol      *string `json:"rol"      validate:"omitempty,oneof=super_administrador administrador vendedor cliente sistemas"`
	Telefono *string `json:"telefono"`
	Imagen   *string `json:"imagen"`
}

type UsuarioResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Nombre   string `json:"nombre"`
	Rol      string `json:"rol"`
	Telefono string `json:"telefono,omitempty"`
	Imagen   string `json:"imagen,omitempty"`
}
