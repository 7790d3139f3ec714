package domain

import (
	"time"
)

// SyncState representa o estado do orquestrador de sincronização
type SyncState string

const (
	SyncStateIdle       SyncState = "IDLE"
	SyncStateFetching   SyncState = "FETCHING"
	SyncStatePersisting SyncState = "PERSISTING"
	SyncStatePublishing SyncState = "PUBLISHING"
	SyncStateErrored    SyncState = "ERRORED"
)

// Stage identifica a etapa do pipeline
type Stage string

const (
	StageFetch   Stage = "fetch"
	StagePersist Stage = "persist"
	StagePublish Stage = "publish"
)

// SyncRun é o resumo de uma execução do pipeline
type SyncRun struct {
	ID          string     `json:"id"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
	Duration    string     `json:"duration"`
	State       SyncState  `json:"state"`
	FailedStage Stage      `json:"failed_stage,omitempty"`
	Fetched     int        `json:"fetched"`
	Persisted   int        `json:"persisted"`
	Published   bool       `json:"published"`
	Error       string     `json:"error,omitempty"`
}
