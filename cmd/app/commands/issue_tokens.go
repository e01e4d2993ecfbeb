package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/codemillmatt/cosmos-db-permissions/internal/app"
	brokerUseCase "github.com/codemillmatt/cosmos-db-permissions/internal/broker/usecase"
	"github.com/codemillmatt/cosmos-db-permissions/internal/config"
)

// RunIssueTokens issues read tokens for a user across the given resources and
// prints them in request order. Outputs in either text or JSON format.
//
// Requirements: Document store collections must be accessible.
func RunIssueTokens(ctx context.Context, userID string, resources []string, format string) error {
	cfg := config.Load()
	container := app.NewContainer(cfg)
	logger := container.Logger()
	defer closeContainer(container, logger)

	useCase, err := container.BrokerUseCase(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize broker use case: %w", err)
	}

	return issueTokens(ctx, useCase, logger, userID, resources, format, DefaultIO())
}

// issueTokens performs the batch issuance and writes the results.
func issueTokens(
	ctx context.Context,
	useCase brokerUseCase.BrokerUseCase,
	logger *slog.Logger,
	userID string,
	resources []string,
	format string,
	io IOTuple,
) error {
	tokens, err := useCase.BatchTokens(ctx, userID, resources)
	if err != nil {
		return fmt.Errorf("failed to issue tokens: %w", err)
	}

	if format == "json" {
		output := make([]map[string]string, len(tokens))
		for i, token := range tokens {
			output[i] = map[string]string{
				"resource_id": resources[i],
				"token":       token,
			}
		}
		outputJSON(output, io.Writer)
	} else {
		for i, token := range tokens {
			_, _ = fmt.Fprintf(io.Writer, "%s: %s\n", resources[i], token)
		}
	}

	logger.Info("tokens issued",
		slog.String("user_id", userID),
		slog.Int("resource_count", len(resources)),
	)

	return nil
}
