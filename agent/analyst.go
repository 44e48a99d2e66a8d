package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/etnz/rentcheck"
	"github.com/etnz/rentcheck/docs"
	"github.com/etnz/rentcheck/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// newFacilitator creates the expert talking to the user, briefed with the
// report.
func newFacilitator(brief string, experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is an investor comparing residential properties to buy and rent out.
			They scored a list of properties, and want to understand the ranking, compare
			properties, or try what-if scenarios (a lower price, a higher rent, a smaller loan).

			Devise a plan of questions to ask to each experts and come up with the best response to the user's request.
			Never make up a figure: ask the Analyst to compute it.
			Answer in markdown.

			This is the report the user is looking at:

		` + brief}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewResearcher returns an expert grounded on Google Search, for rents,
// prices and interest rates of the market.
func NewResearcher() *Expert {
	return &Expert{
		Name: "Researcher",
		Description: `This is an expert of the residential property market.
		Aware of the latest news about suburbs, rents, vacancy rates and lending rates.
		Ask the Researcher whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert of the residential property market, you can search and find about anything related to
			suburbs, median rents and prices, vacancy rates, council rates, and the lending rates of the banks.
			You leverage Google Search to ground your assertions in a solid truth.
			`}}},
		},
	}
}

// NewAnalyst returns the expert in charge of the scored report.
func NewAnalyst(report *rentcheck.Report) *Expert {
	lib := analystFunctions(report)
	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. They are in charge of the user's scored properties.
		They know the stress-tested cash-on-cash return of every property, how it is computed,
		and can score a variation of a property.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an analyst in charge of the user's scored properties.
				You know how to use the Tools to get the report of the scored properties, the
				documentation of the metric, and to score a property with different figures.

				This is how the metric is computed:

				` + must(docs.GetTopic("metric")) + `

				` + must(docs.GetTopic("signals")),
			}}},
		},
		Library: NewLibrary(lib),
	}
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func analystFunctions(report *rentcheck.Report) []Function {
	return []Function{reportFunc(report), scorePropertyFunc(report), documentationFunc()}
}

func reportFunc(report *rentcheck.Report) *Func {
	const name = "report"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: `report returns all the scored properties ranked by stress-tested cash-on-cash return, the assumptions, and the rows that could not be scored.`,
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown report.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			return outputResponse(id, name, renderer.ReportMarkdown(report, 0))
		},
	}
}

func scorePropertyFunc(report *rentcheck.Report) *Func {
	const name = "score_property"
	amount := func(desc string) *genai.Schema {
		return &genai.Schema{Type: genai.TypeNumber, Description: desc}
	}
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: name,
			Description: `score_property computes every metric of a property under the report's assumptions.
			Use it for what-if scenarios: copy the figures of a property of the report and change some of them.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					rentcheck.ColAddress:        {Type: genai.TypeString, Description: "Free text label of the property."},
					rentcheck.ColPrice:          amount("Purchase price."),
					rentcheck.ColWeeklyRent:     amount("Weekly rent."),
					rentcheck.ColCouncilRates:   amount("Annual council rates."),
					rentcheck.ColStrataBodyCorp: amount("Annual strata or body corporate fees."),
					rentcheck.ColInsurance:      amount("Annual insurance."),
					rentcheck.ColLandTax:        amount("Annual land tax."),
					rentcheck.ColOtherCosts:     amount("Other annual costs."),
					rentcheck.ColInterestRate:   amount("Current annual interest rate as a fraction, e.g. 0.065. Defaults to 0.065."),
					rentcheck.ColLVR:            amount("Loan to value ratio in [0, 1]. Defaults to the assumptions."),
					rentcheck.ColLoanTermYears:  {Type: genai.TypeInteger, Description: "Loan term in years. Defaults to the assumptions."},
				},
				Required: []string{rentcheck.ColPrice, rentcheck.ColWeeklyRent},
			},
			Response: &genai.Schema{
				Type:        genai.TypeObject,
				Description: "The metrics of the property, and an error if some could not be computed.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			output, err := scoreProperty(report, args)
			if err != nil {
				return errorResponse(id, name, err)
			}
			return outputResponse(id, name, output)
		},
	}
}

// scoreProperty derives the property described by args. Singular properties
// are still returned, with their error.
func scoreProperty(report *rentcheck.Report, args map[string]any) (map[string]any, error) {
	data, err := json.Marshal(args)
	if err != nil {
		return nil, err
	}
	currency := ""
	if len(report.Results) > 0 {
		if price, ok := report.Results[0].Property.Price.Get(); ok {
			currency = price.Currency()
		}
	}
	props, err := rentcheck.DecodeJSON(bytes.NewReader(data), "$", currency)
	if err != nil {
		return nil, err
	}
	if len(props) != 1 {
		return nil, fmt.Errorf("expected one property, got %d", len(props))
	}

	result := rentcheck.Result{Property: props[0]}
	s, err := rentcheck.Derive(props[0], report.Assumptions)
	if err != nil && !rentcheck.IsSingular(err) {
		return nil, err
	}
	result.Scored, result.Err = &s, err

	data, err = json.Marshal(result)
	if err != nil {
		return nil, err
	}
	var output map[string]any
	err = json.Unmarshal(data, &output)
	delete(output, "row")
	return output, err
}

func documentationFunc() *Func {
	const name = "documentation"
	topics := must(docs.GetAllTopics())
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: `documentation returns a documentation topic of the rck tool.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"topic": {
						Type:        genai.TypeString,
						Description: "The topic, one of the enum.",
						Enum:        topics,
					},
				},
				Required: []string{"topic"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "The topic in markdown.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			topic, ok := args["topic"].(string)
			if !ok {
				return errorResponse(id, name, fmt.Errorf("argument 'topic' is not a string as expected but %T", args["topic"]))
			}
			doc, err := docs.GetTopic(topic)
			if err != nil {
				return errorResponse(id, name, err)
			}
			return outputResponse(id, name, doc)
		},
	}
}
