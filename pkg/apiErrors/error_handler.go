package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

// Códigos de erro estáveis devolvidos pela API
const (
	// Erros de autenticação (1000-1999)
	ErrInvalidCredentials    = "AUTH_001" // Credenciais inválidas
	ErrUserDisabled          = "AUTH_002" // Usuário desativado
	ErrUserNotFound          = "AUTH_003" // Usuário não encontrado
	ErrInvalidToken          = "AUTH_006" // Token inválido
	ErrExpiredToken          = "AUTH_007" // Token expirado
	ErrInsufficientPrivilege = "AUTH_008" // Privilégios insuficientes

	// Erros de validação (2000-2999)
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido
	ErrRouteNotFound       = "VAL_004" // Rota inexistente
	ErrMethodNotAllowed    = "VAL_005" // Método não suportado pela rota

	// Erros de exportação (3000-3999)
	ErrMissingSourceCredentials      = "EXP_001" // Conta de anúncios não conectada
	ErrMissingDestinationCredentials = "EXP_002" // Google Sheets não conectado
	ErrSourceTokenExpired            = "EXP_003" // Token do Meta precisa ser reautorizado
	ErrConfigurationNotFound         = "EXP_004" // Configuração de exportação não encontrada

	// Erros do servidor (5000-5999)
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
	ErrExternalService   = "SRV_003" // Erro em serviço externo
	ErrCommunication     = "SRV_004" // Erro de comunicação
)

var httpStatusMap = map[string]int{
	ErrInvalidCredentials:            http.StatusUnauthorized,
	ErrUserDisabled:                  http.StatusForbidden,
	ErrUserNotFound:                  http.StatusNotFound,
	ErrInvalidToken:                  http.StatusUnauthorized,
	ErrExpiredToken:                  http.StatusUnauthorized,
	ErrInsufficientPrivilege:         http.StatusForbidden,
	ErrInvalidRequest:                http.StatusBadRequest,
	ErrMissingRequiredData:           http.StatusBadRequest,
	ErrInvalidFormat:                 http.StatusBadRequest,
	ErrRouteNotFound:                 http.StatusNotFound,
	ErrMethodNotAllowed:              http.StatusMethodNotAllowed,
	ErrMissingSourceCredentials:      http.StatusPreconditionFailed,
	ErrMissingDestinationCredentials: http.StatusPreconditionFailed,
	ErrSourceTokenExpired:            http.StatusPreconditionFailed,
	ErrConfigurationNotFound:         http.StatusNotFound,
	ErrInternalServer:                http.StatusInternalServerError,
	ErrDatabaseOperation:             http.StatusInternalServerError,
	ErrExternalService:               http.StatusBadGateway,
	ErrCommunication:                 http.StatusServiceUnavailable,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// StatusFor devolve o status HTTP de um código de erro
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	jsoniter.NewEncoder(w).Encode(apiErr)
}

// FromError cria um erro de API a partir de um erro Go
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "Erro desconhecido",
		}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}
