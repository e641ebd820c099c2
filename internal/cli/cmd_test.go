package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tallerhq/taller/internal/db"
	"github.com/tallerhq/taller/internal/domain"
	"github.com/tallerhq/taller/internal/repository"
	"github.com/tallerhq/taller/internal/service"
	"github.com/tallerhq/taller/internal/testutil"
)

type fixedTemplates struct{}

func (fixedTemplates) ItemsFor(phase domain.Phase) []domain.TemplateItem {
	if !phase.HasChecklist() {
		return nil
	}
	return testutil.DefaultTemplate()
}

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)

	svc := service.NewWorkOrderService(
		repository.NewSQLiteWorkOrderRepo(database),
		repository.NewSQLiteChecklistRepo(database),
		repository.NewSQLiteNoteRepo(database),
		db.NewSQLiteUnitOfWork(database),
		fixedTemplates{},
	)

	return &App{
		Orders:        svc,
		DefaultActor:  "tech-1",
		IsInteractive: func() bool { return false },
	}
}

// executeCmd runs a cobra command and captures cobra-level output.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func seedOrder(t *testing.T, app *App) *domain.WorkOrder {
	t.Helper()
	o, err := app.Orders.Create(context.Background(), "Toyota Hilux", "Ana Soto", "front-desk")
	require.NoError(t, err)
	return o
}

func TestRootCmd_NoArgs_ShowsHelp(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app)
	require.NoError(t, err)
	assert.Contains(t, output, "taller")
}

func TestOrderAddCmd(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "order", "add", "--vehicle", "Toyota Hilux", "--client", "Ana Soto")
	require.NoError(t, err)

	orders, err := app.Orders.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "Toyota Hilux", orders[0].Vehicle)
}

func TestOrderAddCmd_MissingVehicle(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "order", "add", "--client", "Ana Soto")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestOrderAdvanceCmd_DefaultsToNextPhase(t *testing.T) {
	app := testApp(t)
	o := seedOrder(t, app)

	_, err := executeCmd(t, app, "order", "advance", o.ID[:8])
	require.NoError(t, err)

	got, err := app.Orders.GetByID(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseDiagnosis, got.CurrentPhase)
}

func TestOrderAdvanceCmd_ExplicitTargetRejectsSkips(t *testing.T) {
	app := testApp(t)
	o := seedOrder(t, app)

	_, err := executeCmd(t, app, "order", "advance", o.ID, "--to", "TESTING")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestOrderQuoteCmd_RequiresDecisionFlag(t *testing.T) {
	app := testApp(t)
	o := seedOrder(t, app)

	_, err := executeCmd(t, app, "order", "quote", o.ID)
	assert.Error(t, err)

	_, err = executeCmd(t, app, "order", "quote", o.ID, "--accept", "--reject")
	assert.Error(t, err)
}

func TestOrderWaitAndResumeCmds(t *testing.T) {
	app := testApp(t)
	o := seedOrder(t, app)
	_, err := executeCmd(t, app, "order", "advance", o.ID)
	require.NoError(t, err)

	_, err = executeCmd(t, app, "order", "wait", o.ID, "--reason", "waiting for part")
	require.NoError(t, err)

	got, err := app.Orders.GetByID(context.Background(), o.ID)
	require.NoError(t, err)
	assert.True(t, got.IsWaiting)

	_, err = executeCmd(t, app, "order", "resume", o.ID)
	require.NoError(t, err)

	got, err = app.Orders.GetByID(context.Background(), o.ID)
	require.NoError(t, err)
	assert.False(t, got.IsWaiting)
}

func TestCheckDoneCmd_TargetsCurrentPhase(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()
	o := seedOrder(t, app)

	_, err := app.Orders.Advance(ctx, o.ID, domain.PhaseDiagnosis, "tech-1")
	require.NoError(t, err)
	_, err = app.Orders.SetDiagnosis(ctx, o.ID, "worn pads", 2, "tech-1")
	require.NoError(t, err)
	_, err = app.Orders.Advance(ctx, o.ID, domain.PhaseQuoteSent, "tech-1")
	require.NoError(t, err)
	_, err = app.Orders.RecordQuoteDecision(ctx, o.ID, true, "front-desk")
	require.NoError(t, err)
	_, err = app.Orders.Advance(ctx, o.ID, domain.PhaseDisassembly, "tech-1")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "check", "done", o.ID, "drain-fluids", "--obs", "oil very dark")
	require.NoError(t, err)

	got, err := app.Orders.GetByID(ctx, o.ID)
	require.NoError(t, err)
	cl, err := got.Checklist(domain.PhaseDisassembly)
	require.NoError(t, err)
	it := cl.Item("drain-fluids")
	require.NotNil(t, it)
	assert.True(t, it.Completed)
	assert.Equal(t, "oil very dark", it.Observations)
	assert.Equal(t, "tech-1", it.CompletedBy)
}

func TestCheckRemoveCmd_TemplateItemForbidden(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()
	o := seedOrder(t, app)

	_, err := app.Orders.Advance(ctx, o.ID, domain.PhaseDiagnosis, "tech-1")
	require.NoError(t, err)
	_, err = app.Orders.SetDiagnosis(ctx, o.ID, "worn pads", 2, "tech-1")
	require.NoError(t, err)
	_, err = app.Orders.Advance(ctx, o.ID, domain.PhaseQuoteSent, "tech-1")
	require.NoError(t, err)
	_, err = app.Orders.RecordQuoteDecision(ctx, o.ID, true, "front-desk")
	require.NoError(t, err)
	_, err = app.Orders.Advance(ctx, o.ID, domain.PhaseDisassembly, "tech-1")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "check", "remove", o.ID, "drain-fluids")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestNoteAddCmd(t *testing.T) {
	app := testApp(t)
	o := seedOrder(t, app)

	_, err := executeCmd(t, app, "note", "add", o.ID, "rattles", "at", "idle")
	require.NoError(t, err)

	got, err := app.Orders.GetByID(context.Background(), o.ID)
	require.NoError(t, err)
	require.Len(t, got.Notes, 1)
	assert.Equal(t, "rattles at idle", got.Notes[0].Text)
}

func TestResolveOrderID_PrefixAndAmbiguity(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()
	o := seedOrder(t, app)

	id, err := resolveOrderID(ctx, app, o.ID[:8])
	require.NoError(t, err)
	assert.Equal(t, o.ID, id)

	_, err = resolveOrderID(ctx, app, "nope")
	assert.Error(t, err)

	_, err = resolveOrderID(ctx, app, "")
	assert.Error(t, err)
}
