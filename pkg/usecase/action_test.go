package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/horae/pkg/domain/interfaces"
	"github.com/secmon-lab/horae/pkg/domain/model"
	"github.com/secmon-lab/horae/pkg/domain/types"
	"github.com/secmon-lab/horae/pkg/repository/memory"
	"github.com/secmon-lab/horae/pkg/service/workbook"
	"github.com/secmon-lab/horae/pkg/usecase"
	"github.com/secmon-lab/horae/pkg/utils/clock"
)

var jst = time.FixedZone("JST", 9*60*60)

func newUseCases(t *testing.T) (*usecase.UseCases, interfaces.Workbook) {
	t.Helper()
	ctx := context.Background()

	wb := memory.New()
	_, err := wb.CreateTable(ctx, workbook.TableCompanies, workbook.RequiredCompanyColumns())
	gt.NoError(t, err).Required()
	_, err = wb.CreateTable(ctx, workbook.TableActions, workbook.RequiredActionColumns())
	gt.NoError(t, err).Required()

	return usecase.New(wb, jst), wb
}

// tickingCtx returns a context whose clock advances one second per call,
// so created_at values are distinct and deterministic.
func tickingCtx(start time.Time) context.Context {
	now := start
	return clock.With(context.Background(), func() time.Time {
		now = now.Add(time.Second)
		return now
	})
}

func ptr(s string) *string { return &s }

func create(t *testing.T, ctx context.Context, uc *usecase.UseCases, in model.CreateInput) *model.Action {
	t.Helper()

	listing, err := uc.CreateAction(ctx, &in)
	gt.NoError(t, err).Required()

	for _, a := range listing {
		if a.Note == in.Note {
			return a
		}
	}
	t.Fatalf("created action not in listing: %q", in.Note)
	return nil
}

func TestCreateAction(t *testing.T) {
	start := time.Date(2025, 1, 1, 9, 0, 0, 0, jst)

	t.Run("listing grows by one with a fresh unique ID", func(t *testing.T) {
		uc, _ := newUseCases(t)
		ctx := tickingCtx(start)

		before, err := uc.ListActions(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, before).Length(0)

		seen := map[types.ActionID]bool{}
		for i, note := range []string{"first", "second", "third"} {
			listing, err := uc.CreateAction(ctx, &model.CreateInput{
				CompanyName: "Acme",
				DueDate:     "2025-02-01",
				Category:    "その他",
				Note:        note,
			})
			gt.NoError(t, err).Required()
			gt.Array(t, listing).Length(i + 1)

			for _, a := range listing {
				seen[a.ID] = true
			}
			gt.Number(t, len(seen)).Equal(i + 1)
		}
	})

	t.Run("status omitted defaults to open with empty completed_at", func(t *testing.T) {
		uc, _ := newUseCases(t)
		ctx := tickingCtx(start)

		a := create(t, ctx, uc, model.CreateInput{
			CompanyName: "Acme",
			DueDate:     "2025-01-10",
			Category:    "契約・請求",
			Note:        "call back",
		})

		gt.Value(t, a.Status).Equal(types.StatusOpen)
		gt.Value(t, a.CompletedAt).Equal("")
		gt.Value(t, a.CreatedAt).Equal(a.UpdatedAt)
		gt.Value(t, a.DueDate).Equal("2025-01-10")
	})

	t.Run("creating in terminal status stamps completed_at", func(t *testing.T) {
		uc, _ := newUseCases(t)
		ctx := tickingCtx(start)

		a := create(t, ctx, uc, model.CreateInput{
			CompanyName: "Acme",
			DueDate:     "2025-01-10",
			Category:    "その他",
			Status:      "完了",
			Note:        "done on arrival",
		})

		gt.Value(t, a.Status).Equal(types.StatusDone)
		gt.Value(t, a.CompletedAt).NotEqual("")
	})

	t.Run("input strings are trimmed", func(t *testing.T) {
		uc, _ := newUseCases(t)
		ctx := tickingCtx(start)

		a := create(t, ctx, uc, model.CreateInput{
			CompanyName: "  Acme  ",
			StaffName:   " 田中 ",
			DueDate:     "2025-01-10",
			Category:    "その他",
			Note:        "trimmed",
		})

		gt.Value(t, a.CompanyName).Equal("Acme")
		gt.Value(t, a.StaffName).Equal("田中")
	})

	t.Run("validation failures", func(t *testing.T) {
		uc, _ := newUseCases(t)
		ctx := tickingCtx(start)

		base := model.CreateInput{
			CompanyName: "Acme",
			DueDate:     "2025-01-10",
			Category:    "その他",
			Note:        "n",
		}

		cases := []struct {
			name   string
			mutate func(in *model.CreateInput)
			want   error
		}{
			{"missing company_name", func(in *model.CreateInput) { in.CompanyName = " " }, types.ErrRequiredField},
			{"missing note", func(in *model.CreateInput) { in.Note = "" }, types.ErrRequiredField},
			{"missing due_date", func(in *model.CreateInput) { in.DueDate = "" }, types.ErrRequiredField},
			{"impossible due_date", func(in *model.CreateInput) { in.DueDate = "2024-02-30" }, types.ErrInvalidDate},
			{"malformed due_date", func(in *model.CreateInput) { in.DueDate = "01/10/2025" }, types.ErrInvalidDate},
			{"unknown category", func(in *model.CreateInput) { in.Category = "Unknown" }, types.ErrInvalidCategory},
			{"missing category", func(in *model.CreateInput) { in.Category = "" }, types.ErrInvalidCategory},
			{"unknown status", func(in *model.CreateInput) { in.Status = "保留" }, types.ErrInvalidStatus},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				in := base
				tc.mutate(&in)
				_, err := uc.CreateAction(ctx, &in)
				gt.Error(t, err)
				gt.Bool(t, errors.Is(err, tc.want)).True()

				// No partial effect on failure.
				listing, err := uc.ListActions(ctx)
				gt.NoError(t, err).Required()
				gt.Array(t, listing).Length(0)
			})
		}
	})

	t.Run("missing schema aborts before any write", func(t *testing.T) {
		wb := memory.New()
		uc := usecase.New(wb, jst)
		ctx := tickingCtx(start)

		_, err := uc.CreateAction(ctx, &model.CreateInput{
			CompanyName: "Acme", DueDate: "2025-01-10", Category: "その他", Note: "n",
		})
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, types.ErrTableMissing)).True()
	})
}

func TestListActions(t *testing.T) {
	start := time.Date(2025, 1, 1, 9, 0, 0, 0, jst)

	t.Run("sorted by due date then creation time", func(t *testing.T) {
		uc, _ := newUseCases(t)
		ctx := tickingCtx(start)

		// Created out of due-date order; same due date for b1/b2 so the
		// ticking created_at decides.
		create(t, ctx, uc, model.CreateInput{CompanyName: "A", DueDate: "2025-03-01", Category: "その他", Note: "late"})
		create(t, ctx, uc, model.CreateInput{CompanyName: "A", DueDate: "2025-02-01", Category: "その他", Note: "b1"})
		create(t, ctx, uc, model.CreateInput{CompanyName: "A", DueDate: "2025-02-01", Category: "その他", Note: "b2"})
		create(t, ctx, uc, model.CreateInput{CompanyName: "A", DueDate: "2025-01-15", Category: "その他", Note: "early"})

		listing, err := uc.ListActions(ctx)
		gt.NoError(t, err).Required()

		notes := make([]string, 0, len(listing))
		for _, a := range listing {
			notes = append(notes, a.Note)
		}
		gt.Array(t, notes).Equal([]string{"early", "b1", "b2", "late"})
	})

	t.Run("empty due date sorts last", func(t *testing.T) {
		uc, wb := newUseCases(t)
		ctx := tickingCtx(start)

		create(t, ctx, uc, model.CreateInput{CompanyName: "A", DueDate: "2025-03-01", Category: "その他", Note: "dated"})

		// Simulate an externally added row with no due date.
		tbl, err := wb.Table(ctx, workbook.TableActions)
		gt.NoError(t, err).Required()
		gt.NoError(t, tbl.AppendRow(ctx, []any{
			"A_20250101_000000_0000", "2025-01-01T00:00:00+09:00", "2025-01-01T00:00:00+09:00",
			"", "A", "", "その他", "未対応", "undated", "", false, "",
		})).Required()

		listing, err := uc.ListActions(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, listing).Length(2)
		gt.Value(t, listing[0].Note).Equal("dated")
		gt.Value(t, listing[1].Note).Equal("undated")
	})

	t.Run("soft-deleted rows are excluded", func(t *testing.T) {
		uc, _ := newUseCases(t)
		ctx := tickingCtx(start)

		a := create(t, ctx, uc, model.CreateInput{CompanyName: "A", DueDate: "2025-01-10", Category: "その他", Note: "gone"})
		create(t, ctx, uc, model.CreateInput{CompanyName: "A", DueDate: "2025-01-11", Category: "その他", Note: "kept"})

		listing, err := uc.DeleteAction(ctx, a.ID.String())
		gt.NoError(t, err).Required()
		gt.Array(t, listing).Length(1)
		gt.Value(t, listing[0].Note).Equal("kept")
	})
}

func TestUpdateAction(t *testing.T) {
	start := time.Date(2025, 1, 1, 9, 0, 0, 0, jst)

	setup := func(t *testing.T) (*usecase.UseCases, context.Context, *model.Action) {
		uc, _ := newUseCases(t)
		ctx := tickingCtx(start)
		a := create(t, ctx, uc, model.CreateInput{
			CompanyName: "Acme",
			DueDate:     "2025-01-10",
			Category:    "その他",
			Status:      "対応中",
			Note:        "follow up",
		})
		return uc, ctx, a
	}

	findByID := func(t *testing.T, listing []*model.Action, id types.ActionID) *model.Action {
		t.Helper()
		for _, a := range listing {
			if a.ID == id {
				return a
			}
		}
		t.Fatalf("action %s not in listing", id)
		return nil
	}

	t.Run("transition into terminal sets completed_at, out clears it", func(t *testing.T) {
		uc, ctx, a := setup(t)

		listing, err := uc.UpdateAction(ctx, a.ID.String(), &model.Patch{Status: ptr("完了")})
		gt.NoError(t, err).Required()
		done := findByID(t, listing, a.ID)
		gt.Value(t, done.Status).Equal(types.StatusDone)
		gt.Value(t, done.CompletedAt).NotEqual("")

		listing, err = uc.UpdateAction(ctx, a.ID.String(), &model.Patch{Status: ptr("対応中")})
		gt.NoError(t, err).Required()
		reopened := findByID(t, listing, a.ID)
		gt.Value(t, reopened.Status).Equal(types.StatusInProgress)
		gt.Value(t, reopened.CompletedAt).Equal("")
	})

	t.Run("transition between non-terminal statuses leaves completed_at alone", func(t *testing.T) {
		uc, ctx, a := setup(t)

		listing, err := uc.UpdateAction(ctx, a.ID.String(), &model.Patch{Status: ptr("未対応")})
		gt.NoError(t, err).Required()
		got := findByID(t, listing, a.ID)
		gt.Value(t, got.Status).Equal(types.StatusOpen)
		gt.Value(t, got.CompletedAt).Equal("")
	})

	t.Run("patch without status never touches completed_at", func(t *testing.T) {
		uc, ctx, a := setup(t)

		_, err := uc.UpdateAction(ctx, a.ID.String(), &model.Patch{Status: ptr("完了")})
		gt.NoError(t, err).Required()

		listing, err := uc.UpdateAction(ctx, a.ID.String(), &model.Patch{Note: ptr("still done")})
		gt.NoError(t, err).Required()
		got := findByID(t, listing, a.ID)
		gt.Value(t, got.Status).Equal(types.StatusDone)
		gt.Value(t, got.CompletedAt).NotEqual("")
	})

	t.Run("partial patch leaves unsupplied fields untouched", func(t *testing.T) {
		uc, ctx, a := setup(t)

		listing, err := uc.UpdateAction(ctx, a.ID.String(), &model.Patch{
			Note:    ptr("rescheduled"),
			DueDate: ptr("2025-02-20"),
		})
		gt.NoError(t, err).Required()

		got := findByID(t, listing, a.ID)
		gt.Value(t, got.Note).Equal("rescheduled")
		gt.Value(t, got.DueDate).Equal("2025-02-20")
		gt.Value(t, got.CompanyName).Equal("Acme")
		gt.Value(t, got.Category).Equal(types.CategoryOther)
		gt.Value(t, got.Status).Equal(types.StatusInProgress)
		gt.Value(t, got.CreatedAt).Equal(a.CreatedAt)
		gt.Value(t, got.UpdatedAt).NotEqual(a.UpdatedAt)
	})

	t.Run("whole patch is validated before any field applies", func(t *testing.T) {
		uc, ctx, a := setup(t)

		_, err := uc.UpdateAction(ctx, a.ID.String(), &model.Patch{
			Note:     ptr("should not stick"),
			Category: ptr("bogus"),
		})
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, types.ErrInvalidCategory)).True()

		listing, err := uc.ListActions(ctx)
		gt.NoError(t, err).Required()
		got := findByID(t, listing, a.ID)
		gt.Value(t, got.Note).Equal("follow up")
		gt.Value(t, got.UpdatedAt).Equal(a.UpdatedAt)
	})

	t.Run("per-field rules match create", func(t *testing.T) {
		uc, ctx, a := setup(t)

		cases := []struct {
			name  string
			patch model.Patch
			want  error
		}{
			{"empty note", model.Patch{Note: ptr(" ")}, types.ErrRequiredField},
			{"empty company_name", model.Patch{CompanyName: ptr("")}, types.ErrRequiredField},
			{"empty due_date", model.Patch{DueDate: ptr("")}, types.ErrRequiredField},
			{"impossible due_date", model.Patch{DueDate: ptr("2024-02-30")}, types.ErrInvalidDate},
			{"unknown category", model.Patch{Category: ptr("Unknown")}, types.ErrInvalidCategory},
			{"unknown status", model.Patch{Status: ptr("保留")}, types.ErrInvalidStatus},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := uc.UpdateAction(ctx, a.ID.String(), &tc.patch)
				gt.Error(t, err)
				gt.Bool(t, errors.Is(err, tc.want)).True()
			})
		}
	})

	t.Run("empty staff_name is allowed", func(t *testing.T) {
		uc, ctx, a := setup(t)

		listing, err := uc.UpdateAction(ctx, a.ID.String(), &model.Patch{StaffName: ptr("")})
		gt.NoError(t, err).Required()
		gt.Value(t, findByID(t, listing, a.ID).StaffName).Equal("")
	})

	t.Run("unknown ID fails", func(t *testing.T) {
		uc, ctx, _ := setup(t)

		_, err := uc.UpdateAction(ctx, "A_19990101_000000_0000", &model.Patch{Note: ptr("x")})
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, types.ErrActionNotFound)).True()
	})

	t.Run("empty ID fails", func(t *testing.T) {
		uc, ctx, _ := setup(t)

		_, err := uc.UpdateAction(ctx, "  ", &model.Patch{Note: ptr("x")})
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, types.ErrMissingID)).True()
	})

	t.Run("empty patch fails", func(t *testing.T) {
		uc, ctx, a := setup(t)

		_, err := uc.UpdateAction(ctx, a.ID.String(), &model.Patch{})
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, types.ErrEmptyPatch)).True()

		_, err = uc.UpdateAction(ctx, a.ID.String(), nil)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, types.ErrEmptyPatch)).True()
	})
}

func TestDeleteAction(t *testing.T) {
	start := time.Date(2025, 1, 1, 9, 0, 0, 0, jst)

	t.Run("deleted action is gone and immutable", func(t *testing.T) {
		uc, _ := newUseCases(t)
		ctx := tickingCtx(start)
		a := create(t, ctx, uc, model.CreateInput{CompanyName: "A", DueDate: "2025-01-10", Category: "その他", Note: "bye"})

		listing, err := uc.DeleteAction(ctx, a.ID.String())
		gt.NoError(t, err).Required()
		gt.Array(t, listing).Length(0)

		_, err = uc.UpdateAction(ctx, a.ID.String(), &model.Patch{Note: ptr("zombie")})
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, types.ErrActionDeleted)).True()
	})

	t.Run("double delete fails", func(t *testing.T) {
		uc, _ := newUseCases(t)
		ctx := tickingCtx(start)
		a := create(t, ctx, uc, model.CreateInput{CompanyName: "A", DueDate: "2025-01-10", Category: "その他", Note: "bye"})

		_, err := uc.DeleteAction(ctx, a.ID.String())
		gt.NoError(t, err).Required()

		_, err = uc.DeleteAction(ctx, a.ID.String())
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, types.ErrActionDeleted)).True()
	})

	t.Run("unknown ID fails", func(t *testing.T) {
		uc, _ := newUseCases(t)
		ctx := tickingCtx(start)

		_, err := uc.DeleteAction(ctx, "A_19990101_000000_0000")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, types.ErrActionNotFound)).True()
	})

	t.Run("empty ID fails", func(t *testing.T) {
		uc, _ := newUseCases(t)
		ctx := tickingCtx(start)

		_, err := uc.DeleteAction(ctx, "")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, types.ErrMissingID)).True()
	})
}
