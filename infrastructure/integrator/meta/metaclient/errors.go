package metaclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	metadomain "github.com/vfg2006/insights-exporter/infrastructure/integrator/meta/domain"
)

// APIError é devolvido quando o Graph responde com status diferente de 200
type APIError struct {
	StatusCode int
	Response   *metadomain.ErrorResponse
	Body       string
}

func (e *APIError) Error() string {
	if e.Response != nil && e.Response.Error.Message != "" {
		return fmt.Sprintf("meta api: status %d, code %d: %s", e.StatusCode, e.Response.Error.Code, e.Response.Error.Message)
	}
	return fmt.Sprintf("meta api: status %d: %s", e.StatusCode, e.Body)
}

// IsTokenExpired indica que o token de acesso precisa ser reautorizado pelo usuário
func (e *APIError) IsTokenExpired() bool {
	return e.Response != nil && e.Response.IsTokenExpired()
}

// IsTokenExpired verifica se err (ou algum erro encadeado) é um token expirado do Meta
func IsTokenExpired(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.IsTokenExpired()
}

// IsRateLimited verifica se err (ou algum erro encadeado) é um limite de chamadas do Meta
func IsRateLimited(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Response != nil && apiErr.Response.IsRateLimited()
}

func ParseErrorResponse(body []byte) (*metadomain.ErrorResponse, error) {
	var errorResp metadomain.ErrorResponse
	if err := json.Unmarshal(body, &errorResp); err != nil {
		return nil, err
	}
	return &errorResp, nil
}

// HandleResponse lê o corpo e converte respostas de erro em *APIError
func (c *MetaClient) HandleResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta: %w", err)
	}

	if resp.StatusCode == http.StatusOK {
		return body, nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	if errorResp, parseErr := ParseErrorResponse(body); parseErr == nil && errorResp.Error.Code != 0 {
		apiErr.Response = errorResp
	}

	return nil, apiErr
}
