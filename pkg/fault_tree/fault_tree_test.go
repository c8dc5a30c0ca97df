package fault_tree

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtomasevic/cutset/pkg/indexed_tree"
)

func TestAddEventsNormalizesNames(t *testing.T) {
	ft := NewFaultTree("Plant")
	require.NoError(t, ft.AddBasicEvent(NewBasicEvent("PumpFailure")))

	gate := NewGate("Top", &indexed_tree.Formula{Type: "null", EventArgs: []string{"pumpfailure"}})
	require.NoError(t, ft.AddGate(gate))

	got, ok := ft.Gate("TOP")
	require.True(t, ok)
	assert.Equal(t, "top", got.Name)
	assert.NotEqual(t, uuid.Nil, got.ID)
}

func TestAddDuplicateBasicEvent(t *testing.T) {
	ft := NewFaultTree("plant")
	require.NoError(t, ft.AddBasicEvent(NewBasicEvent("a")))

	err := ft.AddBasicEvent(NewBasicEvent("A"))
	assert.ErrorIs(t, err, ErrDuplicateEvent)
}

func TestAddDuplicateGate(t *testing.T) {
	ft := NewFaultTree("plant")
	f := &indexed_tree.Formula{Type: "null", EventArgs: []string{"a"}}
	require.NoError(t, ft.AddGate(NewGate("g", f)))

	err := ft.AddGate(NewGate("g", f))
	assert.ErrorIs(t, err, ErrDuplicateEvent)
}

func TestGateAndPrimaryNameClash(t *testing.T) {
	ft := NewFaultTree("plant")
	require.NoError(t, ft.AddBasicEvent(NewBasicEvent("a")))

	err := ft.AddGate(NewGate("a", &indexed_tree.Formula{Type: "null", EventArgs: []string{"a"}}))
	assert.ErrorIs(t, err, ErrNameClash)

	require.NoError(t, ft.AddGate(NewGate("g", &indexed_tree.Formula{Type: "null", EventArgs: []string{"a"}})))
	err = ft.AddHouseEvent(NewHouseEvent("g", true))
	assert.ErrorIs(t, err, ErrNameClash)
}

func TestTopEventsAreUnreferencedGates(t *testing.T) {
	ft := NewFaultTree("plant")
	require.NoError(t, ft.AddBasicEvent(NewBasicEvent("a")))
	require.NoError(t, ft.AddBasicEvent(NewBasicEvent("b")))

	require.NoError(t, ft.AddGate(NewGate("branch", &indexed_tree.Formula{
		Type: "and", EventArgs: []string{"a", "b"},
	})))
	require.NoError(t, ft.AddGate(NewGate("root", &indexed_tree.Formula{
		Type: "or", EventArgs: []string{"a", "branch"},
	})))

	tops := ft.TopEvents()
	require.Len(t, tops, 1)
	assert.Equal(t, "root", tops[0].Name)
}

func TestValidateArities(t *testing.T) {
	cases := []struct {
		name    string
		formula *indexed_tree.Formula
		wantErr bool
	}{
		{"and needs two", &indexed_tree.Formula{Type: "and", EventArgs: []string{"a"}}, true},
		{"or ok", &indexed_tree.Formula{Type: "or", EventArgs: []string{"a", "b"}}, false},
		{"xor needs exactly two", &indexed_tree.Formula{Type: "xor", EventArgs: []string{"a", "b", "c"}}, true},
		{"not needs one", &indexed_tree.Formula{Type: "not", EventArgs: []string{"a", "b"}}, true},
		{"null ok", &indexed_tree.Formula{Type: "null", EventArgs: []string{"a"}}, false},
		{"atleast needs vote", &indexed_tree.Formula{Type: "atleast", EventArgs: []string{"a", "b", "c"}}, true},
		{"atleast vote below args", &indexed_tree.Formula{Type: "atleast", VoteNumber: 3, EventArgs: []string{"a", "b", "c"}}, true},
		{"atleast ok", &indexed_tree.Formula{Type: "atleast", VoteNumber: 2, EventArgs: []string{"a", "b", "c"}}, false},
		{"unknown type", &indexed_tree.Formula{Type: "imply", EventArgs: []string{"a", "b"}}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ft := NewFaultTree("plant")
			for _, n := range []string{"a", "b", "c"} {
				require.NoError(t, ft.AddBasicEvent(NewBasicEvent(n)))
			}
			require.NoError(t, ft.AddGate(NewGate("top", tc.formula)))

			err := ft.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateUndefinedReference(t *testing.T) {
	ft := NewFaultTree("plant")
	require.NoError(t, ft.AddBasicEvent(NewBasicEvent("a")))
	require.NoError(t, ft.AddGate(NewGate("top", &indexed_tree.Formula{
		Type: "or", EventArgs: []string{"a", "ghost"},
	})))

	err := ft.Validate()
	assert.ErrorIs(t, err, ErrUndefinedEvent)
}
