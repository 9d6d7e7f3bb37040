package cli

import (
	"fmt"
	"strings"

	"github.com/morikuni/failure/v2"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// enumFlag accepts one value out of a fixed set, ignoring case
type enumFlag[T ~string] struct {
	IsSet   bool
	Value   T
	allowed []T
	typ     string
}

func newEnumFlag[T ~string](typ string, value T, allowed []T) *enumFlag[T] {
	return &enumFlag[T]{Value: value, allowed: allowed, typ: typ}
}

// String implements pflag.Value.
func (f *enumFlag[T]) String() string {
	return string(f.Value)
}

func (f *enumFlag[T]) Set(value string) error {
	v := T(strings.ToLower(strings.TrimSpace(value)))
	if !lo.Contains(f.allowed, v) {
		return failure.New(InvalidFlag,
			failure.Message(fmt.Sprintf("%q is not a valid %s, choose one of: %s", value, f.typ, f.choices())),
			failure.Context{"value": value},
		)
	}
	f.Value = v
	f.IsSet = true
	return nil
}

func (f *enumFlag[T]) Type() string {
	return f.typ
}

func (f *enumFlag[T]) choices() string {
	return strings.Join(f.completions(), ", ")
}

func (f *enumFlag[T]) completions() []string {
	return lo.Map(f.allowed, func(v T, _ int) string { return string(v) })
}

// complete lists the allowed values for shell completion
func (f *enumFlag[T]) complete(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return f.completions(), cobra.ShellCompDirectiveNoFileComp
}

var _ pflag.Value = &enumFlag[string]{}
