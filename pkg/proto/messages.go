// Package proto defines the shared message types used for internal RPC
// communication with the term-table build service.
//
// These types mirror what a Protocol Buffer definition for this surface
// would look like and are hand-written for zero-dependency usage. The
// hand-written types use JSON struct tags for serialization over the
// platform's lightweight JSON-over-TCP RPC layer (see pkg/grpc).
package proto

// ---------- Common ----------

// HealthCheckResponse mirrors the gRPC health check spec.
type HealthCheckResponse struct {
	Status string `json:"status"` // SERVING, NOT_SERVING, UNKNOWN
}

// RowConfigurationEntryMessage is a single (rank, count) pair.
type RowConfigurationEntryMessage struct {
	Rank  int32 `json:"rank"`
	Count int32 `json:"count"`
}

// ---------- TreatmentService ----------

// GetTreatmentRequest is the input to TreatmentService.GetTreatment.
type GetTreatmentRequest struct {
	IdfClass int32 `json:"idf_class"`
}

// GetTreatmentResponse carries the tabulated row configuration for the
// requested IDF class.
type GetTreatmentResponse struct {
	IdfClass int32                          `json:"idf_class"`
	Strategy string                         `json:"strategy"`
	Entries  []RowConfigurationEntryMessage `json:"entries"`
	Total    int32                          `json:"total_rows"`
}

// BuildStatusRequest is the input to TreatmentService.BuildStatus. It takes
// no parameters; the service always reports its most recent build.
type BuildStatusRequest struct{}

// BuildStatusResponse mirrors internal/termtable.BuildSummary.
type BuildStatusResponse struct {
	Strategy        string  `json:"strategy"`
	Density         float64 `json:"density"`
	SNR             float64 `json:"snr"`
	TermCount       int64   `json:"term_count"`
	TotalRows       int64   `json:"total_rows"`
	RowsByRank      []int64 `json:"rows_by_rank"`
	BuildDurationMs int64   `json:"build_duration_ms"`
	CompletedAtUnix int64   `json:"completed_at_unix,omitempty"`
}

// ---------- Kafka event payloads ----------

// CorpusStatsReadyEvent is the payload of the corpus.stats.ready topic:
// notification that a shard's corpus statistics are ready to build from.
type CorpusStatsReadyEvent struct {
	ShardID       int32  `json:"shard_id"`
	CorpusVersion string `json:"corpus_version"`
}

// TermTableBuildCompletedEvent is the payload published to
// termtable.build.completed after a Trigger-initiated build finishes.
type TermTableBuildCompletedEvent struct {
	ShardID int32               `json:"shard_id"`
	Summary BuildStatusResponse `json:"summary"`
}
