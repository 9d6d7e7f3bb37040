package mcp

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/joakimwinum/weatherforecast/api"
	"github.com/joakimwinum/weatherforecast/gazetteer"
	"github.com/joakimwinum/weatherforecast/render"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"
	"github.com/morikuni/failure/v2"
	"github.com/samber/lo"
)

var validate = validator.New()

func InitTools() []server.ServerTool {
	tools := []server.ServerTool{}

	tools = append(tools, newServerTool(SearchPlace()))
	tools = append(tools, newServerTool(WeatherForecast()))

	return tools
}

// placeArguments are shared by both tools
type placeArguments struct {
	Term     string `mapstructure:"term" validate:"required"`
	Scope    string `mapstructure:"scope" validate:"omitempty,oneof=norway zip world"`
	Language string `mapstructure:"language" validate:"omitempty,oneof=english bokmaal nynorsk"`
	Fuzzy    *bool  `mapstructure:"fuzzy"`
}

func (a placeArguments) options() api.Options {
	opts := api.DefaultOptions()
	if a.Scope != "" {
		opts.Scope = gazetteer.Dataset(a.Scope)
	}
	if a.Language != "" {
		opts.Language = gazetteer.Language(a.Language)
	}
	if a.Fuzzy != nil {
		opts.AllowFuzzy = *a.Fuzzy
	}
	return opts
}

func placeToolOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("term", mcp.Required(), mcp.Description("Place name, postal code or country to search for")),
		mcp.WithString("scope", mcp.Description("Dataset to search, norway by default"), mcp.Enum(enumValues(gazetteer.Datasets())...)),
		mcp.WithString("language", mcp.Description("Language of place names and feeds, english by default"), mcp.Enum(enumValues(gazetteer.Languages())...)),
		mcp.WithBoolean("fuzzy", mcp.Description("Fall back to the closest place name when nothing matches exactly, true by default")),
	}
}

func enumValues[T ~string](values []T) []string {
	return lo.Map(values, func(v T, _ int) string { return string(v) })
}

// decodeArguments fills args from the request and validates it
func decodeArguments(ctx context.Context, req mcp.CallToolRequest, args any) error {
	if err := mapstructure.Decode(req.Params.Arguments, args); err != nil {
		return err
	}
	return validate.StructCtx(ctx, args)
}

func errorResult(err error) *mcp.CallToolResult {
	if msg := failure.MessageOf(err); msg != "" {
		return mcp.NewToolResultError(msg.String())
	}
	return mcp.NewToolResultError(err.Error())
}

func SearchPlace() (tool mcp.Tool, handler server.ToolHandlerFunc) {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Search the gazetteer for a place and return the matching row with its forecast feed link"),
	}, placeToolOptions()...)

	return mcp.NewTool("search_place", opts...),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			var args placeArguments
			if err := decodeArguments(ctx, req, &args); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			options := args.options()
			place, err := api.FindPlace(options, args.Term)
			if err != nil {
				return errorResult(err), nil
			}

			type PlaceInfo struct {
				Term       string             `json:"term"`
				Scope      gazetteer.Dataset  `json:"scope"`
				Language   gazetteer.Language `json:"language"`
				Fuzzy      bool               `json:"fuzzy"`
				Place      gazetteer.Record   `json:"place"`
				Candidates []gazetteer.Record `json:"candidates,omitempty"`
			}

			b, err := json.Marshal(PlaceInfo{
				Term:       args.Term,
				Scope:      options.Scope,
				Language:   options.Language,
				Fuzzy:      place.Fuzzy(),
				Place:      place.Record,
				Candidates: place.Candidates,
			})
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			return mcp.NewToolResultText(string(b)), nil
		}
}

func WeatherForecast() (tool mcp.Tool, handler server.ToolHandlerFunc) {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Fetch the weather forecast for a place and return it as a plain text report"),
		mcp.WithString("mode", mcp.Description("Report to return, tabular by default"),
			mcp.Enum(string(render.ModeTabular), string(render.ModeHourly), string(render.ModeText))),
		mcp.WithString("table_format", mcp.Description("Border style of tables, single by default"),
			mcp.Enum(enumValues(render.TableFormats())...)),
	}, placeToolOptions()...)

	return mcp.NewTool("weather_forecast", opts...),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			type ToolArguments struct {
				Place       placeArguments `mapstructure:",squash"`
				Mode        string         `mapstructure:"mode" validate:"omitempty,oneof=tabular hourly text"`
				TableFormat string         `mapstructure:"table_format" validate:"omitempty,oneof=single double none"`
			}
			var args ToolArguments
			if err := decodeArguments(ctx, req, &args); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			result, err := api.Lookup(ctx, args.Place.options(), args.Place.Term)
			if err != nil {
				return errorResult(err), nil
			}

			var buf bytes.Buffer
			r := render.New(&buf, render.Options{TableFormat: render.TableFormat(args.TableFormat)})
			if err := r.Render(render.Mode(args.Mode), result.Document, result.Hourly); err != nil {
				return errorResult(err), nil
			}

			return mcp.NewToolResultText(buf.String()), nil
		}
}
