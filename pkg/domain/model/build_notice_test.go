package model_test

import (
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/buildnotice/pkg/domain/model"
	"github.com/secmon-lab/buildnotice/pkg/domain/types"
)

func TestNewBuildNotice(t *testing.T) {
	now := time.Date(2024, 11, 1, 9, 0, 0, 0, time.UTC)
	n := model.NewBuildNotice("BN-TEST", now)

	gt.Value(t, n.ID).Equal(model.BuildNoticeID("BN-TEST"))
	gt.Value(t, n.Priority).Equal(types.PriorityMedium)
	gt.Value(t, n.Status).Equal(types.StatusDraft)
	gt.Value(t, n.Quantity).Equal(0)
	gt.Value(t, n.BuildDate).Nil()
	gt.Value(t, n.CreatedAt).Equal(now)
}

func TestNewBuildNoticeID(t *testing.T) {
	a := model.NewBuildNoticeID()
	b := model.NewBuildNoticeID()
	gt.Bool(t, strings.HasPrefix(string(a), "BN-")).True()
	gt.Value(t, a).NotEqual(b)
}

func TestBuildNotice_Values(t *testing.T) {
	n := model.NewBuildNotice("BN-1", time.Now())
	values := n.Values()

	gt.Value(t, len(values)).Equal(len(types.AllFieldIDs()))
	for _, f := range types.AllFieldIDs() {
		gt.Map(t, values).HasKey(f)
	}
	gt.Value(t, values[types.FieldIdentifier]).Equal("BN-1")
	gt.Value(t, values[types.FieldBuildDate]).Nil()
	gt.Value(t, values[types.FieldQuantity]).Equal(0)
}

func TestBuildNotice_Set(t *testing.T) {
	t.Run("quantity coercion", func(t *testing.T) {
		tests := []struct {
			name  string
			value any
			want  int
		}{
			{name: "int", value: 42, want: 42},
			{name: "int64", value: int64(7), want: 7},
			{name: "float truncates", value: 3.9, want: 3},
			{name: "numeric string", value: " 15 ", want: 15},
			{name: "malformed string", value: "lots", want: 0},
			{name: "nil", value: nil, want: 0},
			{name: "bool", value: true, want: 0},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				n := model.NewBuildNotice("BN-1", time.Now())
				gt.NoError(t, n.Set(types.FieldQuantity, tt.value)).Required()
				gt.Value(t, n.Quantity).Equal(tt.want)
			})
		}
	})

	t.Run("date coercion", func(t *testing.T) {
		n := model.NewBuildNotice("BN-1", time.Now())
		gt.NoError(t, n.Set(types.FieldBuildDate, "2024-12-20")).Required()
		gt.Value(t, model.FormatDate(n.BuildDate)).Equal("2024-12-20")

		gt.NoError(t, n.Set(types.FieldBuildDate, "2024-12-21T10:00:00Z")).Required()
		gt.Value(t, model.FormatDate(n.BuildDate)).Equal("2024-12-21")

		gt.NoError(t, n.Set(types.FieldBuildDate, "next tuesday")).Required()
		gt.Value(t, n.BuildDate).Nil()

		gt.NoError(t, n.Set(types.FieldRequiredBy, time.Time{})).Required()
		gt.Value(t, n.RequiredBy).Nil()
	})

	t.Run("select normalization", func(t *testing.T) {
		n := model.NewBuildNotice("BN-1", time.Now())
		gt.NoError(t, n.Set(types.FieldPriority, "URGENT")).Required()
		gt.NoError(t, n.Set(types.FieldStage, "dvt")).Required()
		gt.NoError(t, n.Set(types.FieldStatus, types.StatusApproved)).Required()

		gt.Value(t, n.Priority).Equal(types.PriorityUrgent)
		gt.Value(t, n.Stage).Equal(types.StageDVT)
		gt.Value(t, n.Status).Equal(types.StatusApproved)
	})

	t.Run("identifier is read-only", func(t *testing.T) {
		n := model.NewBuildNotice("BN-1", time.Now())
		err := n.Set(types.FieldIdentifier, "BN-2")
		gt.Error(t, err).Is(model.ErrReadOnlyField)
		gt.Value(t, n.ID).Equal(model.BuildNoticeID("BN-1"))
	})

	t.Run("unknown field", func(t *testing.T) {
		n := model.NewBuildNotice("BN-1", time.Now())
		gt.Error(t, n.Set(types.FieldID("serial"), "x")).Is(model.ErrUnknownField)
		_, err := n.Get(types.FieldID("serial"))
		gt.Error(t, err).Is(model.ErrUnknownField)
	})
}

func TestBuildNotice_Clone(t *testing.T) {
	n := model.NewBuildNotice("BN-1", time.Now())
	gt.NoError(t, n.Set(types.FieldBuildDate, "2024-12-20")).Required()

	c := n.Clone()
	*c.BuildDate = c.BuildDate.AddDate(0, 0, 1)
	c.PartNumber = "XYZ-456"

	gt.Value(t, model.FormatDate(n.BuildDate)).Equal("2024-12-20")
	gt.Value(t, n.PartNumber).Equal("")
}
