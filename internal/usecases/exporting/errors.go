package exporting

import (
	"errors"
	"fmt"
)

// Erros de pré-condição: acontecem antes da execução ser considerada iniciada
// e por isso não geram registro de auditoria
var (
	ErrInvalidRequest                = errors.New("requisição de exportação inválida")
	ErrEmptyMapping                  = errors.New("mapeamento de colunas sem nenhuma métrica ativa")
	ErrMissingSourceCredentials      = errors.New("credenciais do Meta não configuradas para o usuário")
	ErrMissingDestinationCredentials = errors.New("credenciais do Google Sheets não configuradas para o usuário")
)

func invalidRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// IsPreconditionError indica erros que não chegaram a iniciar uma execução
func IsPreconditionError(err error) bool {
	return errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrEmptyMapping) ||
		errors.Is(err, ErrMissingSourceCredentials) ||
		errors.Is(err, ErrMissingDestinationCredentials)
}

// RunError é devolvido quando uma execução já iniciada falha; carrega o id do registro de auditoria
type RunError struct {
	RunID string
	Stage string
	Err   error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("exportação %s falhou em %s: %v", e.RunID, e.Stage, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}
