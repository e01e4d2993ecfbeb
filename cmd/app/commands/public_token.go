package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/codemillmatt/cosmos-db-permissions/internal/app"
	brokerUseCase "github.com/codemillmatt/cosmos-db-permissions/internal/broker/usecase"
	"github.com/codemillmatt/cosmos-db-permissions/internal/config"
)

// RunPublicToken issues a read token for the shared public user and prints it.
// Outputs the serialized token in either text or JSON format.
//
// Requirements: Document store collections must be accessible.
func RunPublicToken(ctx context.Context, format string) error {
	cfg := config.Load()
	container := app.NewContainer(cfg)
	logger := container.Logger()
	defer closeContainer(container, logger)

	useCase, err := container.BrokerUseCase(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize broker use case: %w", err)
	}

	return issuePublicToken(ctx, useCase, logger, format, DefaultIO())
}

// issuePublicToken performs the token issuance and writes the result.
func issuePublicToken(
	ctx context.Context,
	useCase brokerUseCase.BrokerUseCase,
	logger *slog.Logger,
	format string,
	io IOTuple,
) error {
	token, err := useCase.PublicToken(ctx)
	if err != nil {
		return fmt.Errorf("failed to issue public token: %w", err)
	}

	if format == "json" {
		outputJSON(map[string]string{"token": token}, io.Writer)
	} else {
		_, _ = fmt.Fprintln(io.Writer, token)
	}

	logger.Info("public token issued")

	return nil
}
