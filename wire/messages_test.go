// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorRoundTrip(t *testing.T) {
	want := &Error{Severity: 1, Code: 1045, SQLState: "28000", Msg: "Access denied"}
	got, err := UnmarshalError(want.Marshal(nil))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCapabilitiesRoundTrip(t *testing.T) {
	set := &CapabilitiesSet{Capabilities: []Capability{
		{Name: "tls", Value: Any{Kind: AnyScalar, Scalar: &Scalar{Kind: ScalarBool, BoolValue: true}}},
	}}
	got, err := UnmarshalCapabilitiesSet(set.Marshal(nil))
	require.NoError(t, err)
	require.Len(t, got.Capabilities, 1)
	assert.Equal(t, "tls", got.Capabilities[0].Name)
	assert.True(t, got.Capabilities[0].Value.Scalar.BoolValue)
}

func TestStmtExecuteRoundTrip(t *testing.T) {
	want := &StmtExecute{
		Namespace: "sql",
		Stmt:      []byte("SELECT 1"),
		Args: []Any{
			{Kind: AnyScalar, Scalar: &Scalar{Kind: ScalarInt64, Int64Value: 7}},
		},
		CompactMetadata: true,
	}
	got, err := UnmarshalStmtExecute(want.Marshal(nil))
	require.NoError(t, err)
	assert.Equal(t, want.Namespace, got.Namespace)
	assert.Equal(t, want.Stmt, got.Stmt)
	assert.True(t, got.CompactMetadata)
	require.Len(t, got.Args, 1)
	assert.EqualValues(t, 7, got.Args[0].Scalar.Int64Value)
}

func TestCrudFindRoundTrip(t *testing.T) {
	find := &CrudFind{
		crudFilter: crudFilter{
			Collection: "users",
			Schema:     "app",
			Criteria: &Expression{
				Kind: ExprOperator,
				Operator: &Operator{
					Name: "==",
					Param: []Expression{
						{Kind: ExprIdentifier, Identifier: &ColumnIdentifier{Name: "active"}},
						{Kind: ExprLiteral, Literal: &Scalar{Kind: ScalarBool, BoolValue: true}},
					},
				},
			},
			LimitSet: true,
			Limit:    10,
			Order: []Order{
				{Expr: Expression{Kind: ExprIdentifier, Identifier: &ColumnIdentifier{Name: "id"}}, Direction: 1},
			},
		},
		Projection: []Projection{
			{Source: Expression{Kind: ExprIdentifier, Identifier: &ColumnIdentifier{Name: "name"}}, Alias: "n"},
		},
	}

	got, err := UnmarshalCrudFind(find.Marshal(nil))
	require.NoError(t, err)
	assert.Equal(t, "users", got.Collection)
	assert.Equal(t, "app", got.Schema)
	require.NotNil(t, got.Criteria)
	assert.Equal(t, "==", got.Criteria.Operator.Name)
	assert.True(t, got.LimitSet)
	assert.EqualValues(t, 10, got.Limit)
	require.Len(t, got.Order, 1)
	assert.EqualValues(t, 1, got.Order[0].Direction)
	require.Len(t, got.Projection, 1)
	assert.Equal(t, "n", got.Projection[0].Alias)
}

func TestCrudInsertRoundTrip(t *testing.T) {
	ins := &CrudInsert{
		Collection: "users",
		Schema:     "app",
		Row: []InsertRow{
			{Field: []Expression{{Kind: ExprLiteral, Literal: &Scalar{Kind: ScalarString, StringValue: []byte("alice")}}}},
		},
		Upsert: true,
	}
	got, err := UnmarshalCrudInsert(ins.Marshal(nil))
	require.NoError(t, err)
	assert.True(t, got.Upsert)
	require.Len(t, got.Row, 1)
	require.Len(t, got.Row[0].Field, 1)
	assert.Equal(t, []byte("alice"), got.Row[0].Field[0].Literal.StringValue)
}

func TestExpectOpenRoundTrip(t *testing.T) {
	open := &ExpectOpen{Condition: []ExpectCondition{
		{ConditionKey: 1, Op: 0},
	}}
	got, err := UnmarshalExpectOpen(open.Marshal(nil))
	require.NoError(t, err)
	require.Len(t, got.Condition, 1)
	assert.EqualValues(t, 1, got.Condition[0].ConditionKey)
}

func TestColumnRoundTrip(t *testing.T) {
	col := &Column{Type: 7, Name: "id", Table: "users", Collation: 33, Flags: 1}
	got, err := UnmarshalColumn(col.Marshal(nil))
	require.NoError(t, err)
	assert.Equal(t, col, got)
}
