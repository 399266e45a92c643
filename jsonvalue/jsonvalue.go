// Package jsonvalue implements a simplistic JSON value grammar on top of
// the strombol combinators. It exists to exercise and demonstrate the
// engine — recursion broken with Lazy, heterogeneous sequencing, transform
// chains — and deliberately stays simple: strings are naive
// quote-delimited runs without escape processing, and trailing commas are
// permitted in lists and dicts.
package jsonvalue

import (
	"io"

	"github.com/arloliu/strombol"
	"github.com/arloliu/strombol/state"
)

// A Value is one of: Dict, List, string, float64 (number), or nil (null).
type Value = any

// Dict is a JSON object. Keys must be strings.
type Dict = map[string]Value

// List is a JSON array.
type List = []Value

// Parser returns a parser for a single JSON value.
func Parser() strombol.ParseFunc[Value] {
	return parseValue
}

// Parse parses a single JSON value from an in-memory string.
func Parse(input string) (Value, error) {
	return strombol.ParseString[Value](Parser(), input)
}

// ParseReader parses a single JSON value from a stream. Options are passed
// through to state.NewReader, so compressed documents parse directly with
// state.WithDecompression.
func ParseReader(r io.Reader, opts ...state.Option) (Value, error) {
	return strombol.ParseReader[Value](Parser(), r, opts...)
}

// parseValue is the recursion point of the grammar. The dict and list
// branches are wrapped in Lazy so the two expensive recursive parsers are
// only constructed when the input actually reaches them.
func parseValue(st *state.State) (Value, error) {
	p := strombol.Alt[Value](
		strombol.Lazy(dictParser),
		strombol.Lazy(listParser),
		stringValue(),
		numberValue(),
		nullValue(),
	)

	return p.Parse(st)
}

func numberValue() strombol.ParseFunc[Value] {
	return strombol.Apply(strombol.Float(), func(f float64) (Value, error) {
		return f, nil
	})
}

func nullValue() strombol.ParseFunc[Value] {
	return strombol.Apply(strombol.Literal("null"), func(string) (Value, error) {
		return nil, nil
	})
}

// quotedString matches a naive quote-delimited string: everything up to
// the next '"', with no escape sequences.
func quotedString() strombol.ParseFunc[string] {
	quote := strombol.Literal(`"`)
	middle := strombol.StringNoneOf(`"`, strombol.Unbounded())

	return strombol.Transform(strombol.Seq(
		strombol.Box(quote),
		strombol.Box(middle),
		strombol.Box(quote),
	), "string", func(parts []any) (string, error) {
		return parts[1].(string), nil
	})
}

func stringValue() strombol.ParseFunc[Value] {
	return strombol.Apply(quotedString(), func(s string) (Value, error) {
		return s, nil
	})
}

func listParser() strombol.Parser[Value] {
	elem := strombol.Transform(strombol.Seq(
		strombol.Box(strombol.Whitespace()),
		strombol.Box(strombol.ParseFunc[Value](parseValue)),
		strombol.Box(strombol.Whitespace()),
		strombol.Box(strombol.Maybe(strombol.Literal(","))),
	), "list element", func(parts []any) (Value, error) {
		return parts[1], nil
	})

	return strombol.Transform(strombol.Seq(
		strombol.Box(strombol.Literal("[")),
		strombol.Box(strombol.Repeat[Value](elem, strombol.Unbounded())),
		strombol.Box(strombol.Literal("]")),
	), "list", func(parts []any) (Value, error) {
		elems, _ := parts[1].([]Value)
		if elems == nil {
			elems = List{}
		}

		return elems, nil
	})
}

type member struct {
	key string
	val Value
}

func dictParser() strombol.Parser[Value] {
	elem := strombol.Transform(strombol.Seq(
		strombol.Box(strombol.Whitespace()),
		strombol.Box(quotedString()),
		strombol.Box(strombol.Whitespace()),
		strombol.Box(strombol.Literal(":")),
		strombol.Box(strombol.Whitespace()),
		strombol.Box(strombol.ParseFunc[Value](parseValue)),
		strombol.Box(strombol.Whitespace()),
		strombol.Box(strombol.Maybe(strombol.Literal(","))),
	), "dict member", func(parts []any) (member, error) {
		return member{key: parts[1].(string), val: parts[5]}, nil
	})

	return strombol.Transform(strombol.Seq(
		strombol.Box(strombol.Literal("{")),
		strombol.Box(strombol.Repeat[member](elem, strombol.Unbounded())),
		strombol.Box(strombol.Literal("}")),
	), "dict", func(parts []any) (Value, error) {
		members, _ := parts[1].([]member)
		d := make(Dict, len(members))
		for _, m := range members {
			d[m.key] = m.val
		}

		return d, nil
	})
}
