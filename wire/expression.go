// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// DocumentPathKind is one step kind in a document path (§6.5).
type DocumentPathKind uint8

const (
	PathMember DocumentPathKind = iota + 1
	PathMemberAsterisk
	PathArrayIndex
	PathArrayIndexAsterisk
	PathDoubleAsterisk
)

// DocumentPathStep is one element of a ColumnIdentifier's document path.
type DocumentPathStep struct {
	Kind  DocumentPathKind
	Value string // set for PathMember
	Index uint32 // set for PathArrayIndex
}

// ColumnIdentifier names a column, optionally drilling into a document via
// DocumentPath, optionally scoped to a table/schema.
type ColumnIdentifier struct {
	Name         string
	TableName    string
	SchemaName   string
	DocumentPath []DocumentPathStep
}

// Operator applies a named operator to its parameter expressions (e.g. "+",
// "==", "like").
type Operator struct {
	Name  string
	Param []Expression
}

// FunctionCall invokes a named function with its argument expressions.
type FunctionCall struct {
	Name  ColumnIdentifier
	Param []Expression
}

// ExprKind discriminates the Expression visitor's cases: Any's three cases
// extended with {variable, identifier, operator-application, function-call,
// positional/named/unnamed placeholder} (§6.5).
type ExprKind uint8

const (
	ExprLiteral ExprKind = iota + 1
	ExprVariable
	ExprIdentifier
	ExprOperator
	ExprFunctionCall
	ExprPlaceholder
	ExprObject
	ExprArray
)

// PlaceholderKind distinguishes the three placeholder flavors.
type PlaceholderKind uint8

const (
	PlaceholderPositional PlaceholderKind = iota + 1
	PlaceholderNamed
	PlaceholderUnnamed
)

// Expression is one node of the Expression visitor surface consumed (by
// reference only) from the document/expression AST layer outside this
// engine's scope (§6.5).
type Expression struct {
	Kind ExprKind

	Literal      *Scalar
	Variable     string
	Identifier   *ColumnIdentifier
	Operator     *Operator
	FunctionCall *FunctionCall

	PlaceholderKind     PlaceholderKind
	PlaceholderPosition uint32
	PlaceholderName     string

	Object []ExprObjectField
	Array  []Expression
}

// ExprObjectField is one key/value pair of an ExprObject-kind Expression,
// mirroring ObjectField (any.go) but with an Expression leaf instead of Any.
type ExprObjectField struct {
	Key   string
	Value Expression
}

const (
	fExprKind         protowire.Number = 1
	fExprLiteral      protowire.Number = 2
	fExprVariable     protowire.Number = 3
	fExprIdentifier   protowire.Number = 4
	fExprOperator     protowire.Number = 5
	fExprFuncCall     protowire.Number = 6
	fExprPhKind       protowire.Number = 7
	fExprPhPosition   protowire.Number = 8
	fExprPhName       protowire.Number = 9
	fExprObjectField  protowire.Number = 10
	fExprArrayElem    protowire.Number = 11

	fIdentName       protowire.Number = 1
	fIdentTable      protowire.Number = 2
	fIdentSchema     protowire.Number = 3
	fIdentPathStep   protowire.Number = 4
	fPathStepKind    protowire.Number = 1
	fPathStepValue   protowire.Number = 2
	fPathStepIndex   protowire.Number = 3

	fOperatorName  protowire.Number = 1
	fOperatorParam protowire.Number = 2

	fFuncName  protowire.Number = 1
	fFuncParam protowire.Number = 2
)

func (id *ColumnIdentifier) marshal(b []byte) []byte {
	b = appendString(b, fIdentName, id.Name)
	b = appendString(b, fIdentTable, id.TableName)
	b = appendString(b, fIdentSchema, id.SchemaName)
	for _, step := range id.DocumentPath {
		var sub []byte
		sub = appendVarintAlways(sub, fPathStepKind, uint64(step.Kind))
		sub = appendString(sub, fPathStepValue, step.Value)
		sub = appendVarint(sub, fPathStepIndex, uint64(step.Index))
		b = appendSubmessage(b, fIdentPathStep, sub)
	}
	return b
}

func unmarshalIdentifier(b []byte) (*ColumnIdentifier, error) {
	id := &ColumnIdentifier{}
	err := forEachField(b, func(num protowire.Number, typ protowire.Type, rest []byte) ([]byte, error) {
		switch num {
		case fIdentName:
			v, r, err := consumeString(rest)
			if err != nil {
				return nil, err
			}
			id.Name = v
			return r, nil
		case fIdentTable:
			v, r, err := consumeString(rest)
			if err != nil {
				return nil, err
			}
			id.TableName = v
			return r, nil
		case fIdentSchema:
			v, r, err := consumeString(rest)
			if err != nil {
				return nil, err
			}
			id.SchemaName = v
			return r, nil
		case fIdentPathStep:
			sub, r, err := consumeSubmessage(rest)
			if err != nil {
				return nil, err
			}
			var step DocumentPathStep
			if err := forEachField(sub, func(n protowire.Number, t protowire.Type, rr []byte) ([]byte, error) {
				switch n {
				case fPathStepKind:
					v, r2, err := consumeVarint(rr)
					if err != nil {
						return nil, err
					}
					step.Kind = DocumentPathKind(v)
					return r2, nil
				case fPathStepValue:
					v, r2, err := consumeString(rr)
					if err != nil {
						return nil, err
					}
					step.Value = v
					return r2, nil
				case fPathStepIndex:
					v, r2, err := consumeVarint(rr)
					if err != nil {
						return nil, err
					}
					step.Index = uint32(v)
					return r2, nil
				default:
					return skipField(t, rr)
				}
			}); err != nil {
				return nil, err
			}
			id.DocumentPath = append(id.DocumentPath, step)
			return r, nil
		default:
			return skipField(typ, rest)
		}
	})
	if err != nil {
		return nil, err
	}
	return id, nil
}

// Marshal appends the wire encoding of e to b.
func (e *Expression) Marshal(b []byte) []byte {
	b = appendVarintAlways(b, fExprKind, uint64(e.Kind))
	switch e.Kind {
	case ExprLiteral:
		if e.Literal != nil {
			b = appendSubmessage(b, fExprLiteral, e.Literal.Marshal(nil))
		}
	case ExprVariable:
		b = appendString(b, fExprVariable, e.Variable)
	case ExprIdentifier:
		if e.Identifier != nil {
			b = appendSubmessage(b, fExprIdentifier, e.Identifier.marshal(nil))
		}
	case ExprOperator:
		if e.Operator != nil {
			var sub []byte
			sub = appendString(sub, fOperatorName, e.Operator.Name)
			for i := range e.Operator.Param {
				sub = appendSubmessage(sub, fOperatorParam, e.Operator.Param[i].Marshal(nil))
			}
			b = appendSubmessage(b, fExprOperator, sub)
		}
	case ExprFunctionCall:
		if e.FunctionCall != nil {
			var sub []byte
			sub = appendSubmessage(sub, fFuncName, e.FunctionCall.Name.marshal(nil))
			for i := range e.FunctionCall.Param {
				sub = appendSubmessage(sub, fFuncParam, e.FunctionCall.Param[i].Marshal(nil))
			}
			b = appendSubmessage(b, fExprFuncCall, sub)
		}
	case ExprPlaceholder:
		b = appendVarintAlways(b, fExprPhKind, uint64(e.PlaceholderKind))
		switch e.PlaceholderKind {
		case PlaceholderPositional:
			b = appendVarint(b, fExprPhPosition, uint64(e.PlaceholderPosition))
		case PlaceholderNamed:
			b = appendString(b, fExprPhName, e.PlaceholderName)
		}
	case ExprObject:
		for _, f := range e.Object {
			var sub []byte
			sub = appendString(sub, 1, f.Key)
			sub = appendSubmessage(sub, 2, f.Value.Marshal(nil))
			b = appendSubmessage(b, fExprObjectField, sub)
		}
	case ExprArray:
		for i := range e.Array {
			b = appendSubmessage(b, fExprArrayElem, e.Array[i].Marshal(nil))
		}
	}
	return b
}

// UnmarshalExpression parses an Expression from b.
func UnmarshalExpression(b []byte) (*Expression, error) {
	e := &Expression{}
	err := forEachField(b, func(num protowire.Number, typ protowire.Type, rest []byte) ([]byte, error) {
		switch num {
		case fExprKind:
			v, r, err := consumeVarint(rest)
			if err != nil {
				return nil, err
			}
			e.Kind = ExprKind(v)
			return r, nil
		case fExprLiteral:
			sub, r, err := consumeSubmessage(rest)
			if err != nil {
				return nil, err
			}
			s, err := UnmarshalScalar(sub)
			if err != nil {
				return nil, err
			}
			e.Literal = s
			return r, nil
		case fExprVariable:
			v, r, err := consumeString(rest)
			if err != nil {
				return nil, err
			}
			e.Variable = v
			return r, nil
		case fExprIdentifier:
			sub, r, err := consumeSubmessage(rest)
			if err != nil {
				return nil, err
			}
			id, err := unmarshalIdentifier(sub)
			if err != nil {
				return nil, err
			}
			e.Identifier = id
			return r, nil
		case fExprOperator:
			sub, r, err := consumeSubmessage(rest)
			if err != nil {
				return nil, err
			}
			op := &Operator{}
			if err := forEachField(sub, func(n protowire.Number, t protowire.Type, rr []byte) ([]byte, error) {
				switch n {
				case fOperatorName:
					v, r2, err := consumeString(rr)
					if err != nil {
						return nil, err
					}
					op.Name = v
					return r2, nil
				case fOperatorParam:
					v, r2, err := consumeSubmessage(rr)
					if err != nil {
						return nil, err
					}
					p, err := UnmarshalExpression(v)
					if err != nil {
						return nil, err
					}
					op.Param = append(op.Param, *p)
					return r2, nil
				default:
					return skipField(t, rr)
				}
			}); err != nil {
				return nil, err
			}
			e.Operator = op
			return r, nil
		case fExprFuncCall:
			sub, r, err := consumeSubmessage(rest)
			if err != nil {
				return nil, err
			}
			fc := &FunctionCall{}
			if err := forEachField(sub, func(n protowire.Number, t protowire.Type, rr []byte) ([]byte, error) {
				switch n {
				case fFuncName:
					v, r2, err := consumeSubmessage(rr)
					if err != nil {
						return nil, err
					}
					id, err := unmarshalIdentifier(v)
					if err != nil {
						return nil, err
					}
					fc.Name = *id
					return r2, nil
				case fFuncParam:
					v, r2, err := consumeSubmessage(rr)
					if err != nil {
						return nil, err
					}
					p, err := UnmarshalExpression(v)
					if err != nil {
						return nil, err
					}
					fc.Param = append(fc.Param, *p)
					return r2, nil
				default:
					return skipField(t, rr)
				}
			}); err != nil {
				return nil, err
			}
			e.FunctionCall = fc
			return r, nil
		case fExprPhKind:
			v, r, err := consumeVarint(rest)
			if err != nil {
				return nil, err
			}
			e.PlaceholderKind = PlaceholderKind(v)
			return r, nil
		case fExprPhPosition:
			v, r, err := consumeVarint(rest)
			if err != nil {
				return nil, err
			}
			e.PlaceholderPosition = uint32(v)
			return r, nil
		case fExprPhName:
			v, r, err := consumeString(rest)
			if err != nil {
				return nil, err
			}
			e.PlaceholderName = v
			return r, nil
		case fExprObjectField:
			sub, r, err := consumeSubmessage(rest)
			if err != nil {
				return nil, err
			}
			var f ExprObjectField
			if err := forEachField(sub, func(n protowire.Number, t protowire.Type, rr []byte) ([]byte, error) {
				switch n {
				case 1:
					v, r2, err := consumeString(rr)
					if err != nil {
						return nil, err
					}
					f.Key = v
					return r2, nil
				case 2:
					v, r2, err := consumeSubmessage(rr)
					if err != nil {
						return nil, err
					}
					expr, err := UnmarshalExpression(v)
					if err != nil {
						return nil, err
					}
					f.Value = *expr
					return r2, nil
				default:
					return skipField(t, rr)
				}
			}); err != nil {
				return nil, err
			}
			e.Object = append(e.Object, f)
			return r, nil
		case fExprArrayElem:
			sub, r, err := consumeSubmessage(rest)
			if err != nil {
				return nil, err
			}
			el, err := UnmarshalExpression(sub)
			if err != nil {
				return nil, err
			}
			e.Array = append(e.Array, *el)
			return r, nil
		default:
			return skipField(typ, rest)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("wire: expression: %w", err)
	}
	return e, nil
}
