package domain

import (
	"errors"
	"fmt"
)

// Tipos de erro do pipeline de sincronização
var (
	// ErrTransport indica falha de rede ou indisponibilidade do provedor/destino
	ErrTransport = errors.New("transport error")
	// ErrSchema indica que a resposta não tem a estrutura esperada
	ErrSchema = errors.New("schema error")
	// ErrParse indica coeficiente numérico malformado
	ErrParse = errors.New("parse error")
	// ErrPersistence indica falha na transação do banco de dados
	ErrPersistence = errors.New("persistence error")
	// ErrPublish indica falha ao escrever em um destino de publicação
	ErrPublish = errors.New("publish error")
)

// SyncError é um erro com contexto adicional de uma etapa do pipeline
type SyncError struct {
	Kind    error  // Um dos Err* acima
	Op      string // Operação que falhou (ex: wildberries.fetch)
	Details string // Detalhes adicionais
	Err     error  // Erro subjacente (opcional)
}

// Error implementa a interface error
func (e *SyncError) Error() string {
	msg := e.Kind.Error()
	if e.Op != "" {
		msg = fmt.Sprintf("%s: %s", e.Op, msg)
	}
	if e.Details != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Details)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap expõe tanto o tipo do erro quanto a causa para errors.Is/errors.As
func (e *SyncError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newSyncError(kind error, op, details string, err error) *SyncError {
	return &SyncError{Kind: kind, Op: op, Details: details, Err: err}
}

// NewTransportError cria um SyncError do tipo ErrTransport
func NewTransportError(op, details string, err error) *SyncError {
	return newSyncError(ErrTransport, op, details, err)
}

// NewSchemaError cria um SyncError do tipo ErrSchema
func NewSchemaError(op, details string, err error) *SyncError {
	return newSyncError(ErrSchema, op, details, err)
}

// NewParseError cria um SyncError do tipo ErrParse
func NewParseError(op, details string, err error) *SyncError {
	return newSyncError(ErrParse, op, details, err)
}

// NewPersistenceError cria um SyncError do tipo ErrPersistence
func NewPersistenceError(op, details string, err error) *SyncError {
	return newSyncError(ErrPersistence, op, details, err)
}

// NewPublishError cria um SyncError do tipo ErrPublish
func NewPublishError(op, details string, err error) *SyncError {
	return newSyncError(ErrPublish, op, details, err)
}

// ErrorKind retorna o tipo do erro do pipeline, ou nil se não for um erro conhecido
func ErrorKind(err error) error {
	for _, kind := range []error{ErrTransport, ErrSchema, ErrParse, ErrPersistence, ErrPublish} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// RunError é a falha agregada de uma execução, entregue ao agendador
type RunError struct {
	RunID string
	Stage Stage
	Err   error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("sync run %s failed at %s stage: %v", e.RunID, e.Stage, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}
