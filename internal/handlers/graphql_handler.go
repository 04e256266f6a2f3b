package handlers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"
	"go.uber.org/zap"
)

// DefaultRequestTimeout bounds a single GraphQL execution when none is configured.
const DefaultRequestTimeout = 30 * time.Second

// GraphQLHandler serves the store schema over HTTP.
type GraphQLHandler struct {
	schema  graphql.Schema
	timeout time.Duration
	logger  *zap.Logger
}

// NewGraphQLHandler creates a new GraphQLHandler.
func NewGraphQLHandler(schema graphql.Schema, timeout time.Duration, logger *zap.Logger) *GraphQLHandler {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &GraphQLHandler{schema: schema, timeout: timeout, logger: logger}
}

// RegisterRoutes registers the GraphQL endpoint with the Fiber app.
func (h *GraphQLHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/graphql", h.HandleQuery)
	router.Post("/graphql", h.HandleQuery)
}

type graphQLRequest struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

// HandleQuery executes one GraphQL operation taken from the JSON body (POST)
// or the query string (GET).
func (h *GraphQLHandler) HandleQuery(c *fiber.Ctx) error {
	var req graphQLRequest
	if c.Method() == fiber.MethodGet {
		req.Query = c.Query("query")
		req.OperationName = c.Query("operationName")
		if raw := c.Query("variables"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &req.Variables); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"message": "variables must be a JSON object",
				})
			}
		}
	} else if err := c.BodyParser(&req); err != nil {
		h.logger.Debug("invalid graphql request body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if req.Query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "query is required",
		})
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	start := time.Now()
	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        ctx,
	})
	h.logger.Debug("graphql request",
		zap.String("operation", req.OperationName),
		zap.Int("errors", len(result.Errors)),
		zap.Duration("took", time.Since(start)),
	)

	// A result without data means the document never executed (syntax or
	// validation errors).
	status := fiber.StatusOK
	if result.Data == nil && result.HasErrors() {
		status = fiber.StatusBadRequest
	}
	return c.Status(status).JSON(result)
}
