package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"
)

// buildSchema creates the GraphQL schema wired to the classifier service.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	intervalType := graphql.NewObject(graphql.ObjectConfig{
		Name: "StabilityInterval",
		Fields: graphql.Fields{
			"lower":               &graphql.Field{Type: graphql.Float},
			"upper":               &graphql.Field{Type: graphql.Float},
			"unbounded":           &graphql.Field{Type: graphql.Boolean},
			"coordination_number": &graphql.Field{Type: graphql.Int},
			"geometry":            &graphql.Field{Type: graphql.String},
		},
	})

	resultType := graphql.NewObject(graphql.ObjectConfig{
		Name: "ClassificationResult",
		Fields: graphql.Fields{
			"ratio":               &graphql.Field{Type: graphql.Float},
			"coordination_number": &graphql.Field{Type: graphql.Int},
			"geometry":            &graphql.Field{Type: graphql.String},
			"interval":            &graphql.Field{Type: intervalType},
		},
	})

	sweepPointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "SweepPoint",
		Fields: graphql.Fields{
			"anion_radius":        &graphql.Field{Type: graphql.Float},
			"ratio":               &graphql.Field{Type: graphql.Float},
			"coordination_number": &graphql.Field{Type: graphql.Int},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"classify": &graphql.Field{
				Type:        resultType,
				Description: "Classify a cation/anion radius pair into a coordination number",
				Args: graphql.FieldConfigArgument{
					"cation": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"anion":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					cation := p.Args["cation"].(float64)
					anion := p.Args["anion"].(float64)
					return deps.Classifier.Evaluate(p.Context, cation, anion)
				},
			},
			"table": &graphql.Field{
				Type:        graphql.NewList(intervalType),
				Description: "The full ordered radius-ratio stability table",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Classifier.Table(), nil
				},
			},
			"sweep": &graphql.Field{
				Type:        graphql.NewList(sweepPointType),
				Description: "r/R curve for a fixed cation radius over an anion radius range",
				Args: graphql.FieldConfigArgument{
					"cation":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"min_anion": &graphql.ArgumentConfig{Type: graphql.Float, DefaultValue: 0.1},
					"max_anion": &graphql.ArgumentConfig{Type: graphql.Float, DefaultValue: 2.5},
					"steps":     &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 0},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					cation := p.Args["cation"].(float64)
					minAnion := p.Args["min_anion"].(float64)
					maxAnion := p.Args["max_anion"].(float64)
					steps := p.Args["steps"].(int)
					return deps.Classifier.Sweep(p.Context, cation, minAnion, maxAnion, steps)
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.Context(),
		})

		return c.JSON(result)
	}
}
