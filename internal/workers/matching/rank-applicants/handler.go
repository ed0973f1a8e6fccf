package rankapplicants

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"matching-workers/internal/common/errors"
	"matching-workers/internal/common/logger"
	"matching-workers/internal/common/metrics"
	"matching-workers/internal/matching"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/xeipuuv/gojsonschema"
)

const (
	TaskType = "rank-applicants"
)

// inputSchema rejects malformed ranking requests before they reach the
// service. Unknown tiers would otherwise silently filter everything out.
var inputSchema = map[string]interface{}{
	"type":     "object",
	"required": []string{"jobId"},
	"properties": map[string]interface{}{
		"jobId": map[string]interface{}{
			"type":      "string",
			"minLength": 1,
		},
		"minScore": map[string]interface{}{
			"type":    "integer",
			"minimum": 0,
			"maximum": 100,
		},
		"tier": map[string]interface{}{
			"type": "string",
			"enum": []string{"", "EXCELLENT", "GOOD", "POTENTIAL", "DEVELOPING", "NOT_READY"},
		},
		"limit": map[string]interface{}{
			"type":    "integer",
			"minimum": 0,
		},
	},
}

type Handler struct {
	config  *Config
	service *matching.Service
	logger  logger.Logger
}

func NewHandler(config *Config, service *matching.Service, log logger.Logger) *Handler {
	return &Handler{
		config:  config,
		service: service,
		logger:  log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, string(errors.ErrCodeParseError), fmt.Sprintf("parse input: %v", err))
		return
	}

	if err := validateInput(&input); err != nil {
		h.failJob(client, job, string(errors.ErrCodeValidationFailed), err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		code := string(errors.ErrCodeRankingFailed)
		if se, ok := err.(*errors.StandardError); ok {
			code = string(se.Code)
		}
		h.failJob(client, job, code, err.Error())
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	h.completeJob(client, job, output)
}

func validateInput(input *Input) error {
	schemaLoader := gojsonschema.NewGoLoader(inputSchema)
	documentLoader := gojsonschema.NewGoLoader(input)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return errors.NewValidationError(err.Error())
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			details = append(details, e.String())
		}
		return errors.NewValidationError(strings.Join(details, "; "))
	}
	return nil
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	ranking, err := h.service.RankApplicants(ctx, input.JobID, matching.RankOptions{
		MinScore:         input.MinScore,
		Tier:             matching.Tier(input.Tier),
		IncludeWithdrawn: input.IncludeWithdrawn,
		Limit:            input.Limit,
	})
	if err != nil {
		return nil, err
	}

	h.logger.Info("applicants ranked", map[string]interface{}{
		"jobId":    input.JobID,
		"returned": len(ranking.Applicants),
		"total":    ranking.Total,
	})

	return &Output{Ranking: ranking}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, errorCode).Inc()
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	return h.execute(ctx, input)
}
