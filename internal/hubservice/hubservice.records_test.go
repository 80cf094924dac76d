package hubservice

import (
	"context"
	"testing"
	"time"

	apierrors "github.com/itsatony/stationhub/internal/errors"
	"github.com/itsatony/stationhub/internal/models"
)

// Every child mutation appends exactly one history record
func TestChildOperationsAppendOneRecord(t *testing.T) {
	env := setupTestService(t)
	ctx := context.Background()
	st := env.station(t, "La Laguna")

	var (
		sensor       *models.Sensor
		detail       *models.TechnicalDetail
		breakdown    *models.Breakdown
		intervention *models.Intervention
	)
	steps := []struct {
		name   string
		action models.HistoryAction
		run    func() error
	}{
		{"add sensor", models.ActionSensorAdded, func() (err error) {
			sensor, err = env.svc.AddSensor(ctx, env.user, st.ID, models.SensorInput{SensorType: "humedad", Model: "HMP155"})
			return
		}},
		{"update sensor", models.ActionSensorUpdated, func() error {
			_, err := env.svc.UpdateSensor(ctx, env.user, sensor.ID, models.SensorUpdate{Model: strPtr("HMP110")})
			return err
		}},
		{"configure router", models.ActionRouterConfigured, func() error {
			_, err := env.svc.ConfigureRouter(ctx, env.user, st.ID, models.RouterInput{Model: "RUT240"})
			return err
		}},
		{"add detail", models.ActionDetailAdded, func() (err error) {
			detail, err = env.svc.AddTechnicalDetail(ctx, env.user, st.ID, models.TechnicalDetailInput{DetailType: "comunicaciones", Key: "apn", Value: "m2m"})
			return
		}},
		{"update detail", models.ActionDetailUpdated, func() error {
			_, err := env.svc.UpdateTechnicalDetail(ctx, env.user, detail.ID, models.TechnicalDetailUpdate{Value: strPtr("iot")})
			return err
		}},
		{"report breakdown", models.ActionBreakdownReported, func() (err error) {
			breakdown, err = env.svc.ReportBreakdown(ctx, env.user, st.ID, models.BreakdownInput{Title: "Panel roto", Description: "Granizo", Severity: models.SeverityHigh})
			return
		}},
		{"update breakdown", models.ActionBreakdownUpdated, func() error {
			sev := models.SeverityCritical
			_, err := env.svc.UpdateBreakdown(ctx, env.user, breakdown.ID, models.BreakdownUpdate{Severity: &sev})
			return err
		}},
		{"resolve breakdown", models.ActionBreakdownResolved, func() error {
			_, err := env.svc.ResolveBreakdown(ctx, env.user, breakdown.ID, models.ResolveBreakdownInput{ResolutionNotes: "Panel sustituido"})
			return err
		}},
		{"schedule intervention", models.ActionInterventionScheduled, func() (err error) {
			intervention, err = env.svc.ScheduleIntervention(ctx, env.user, st.ID, models.InterventionInput{InterventionType: "correctivo", Title: "Cambio de bateria", Description: "Bateria agotada"})
			return
		}},
		{"update intervention", models.ActionInterventionUpdated, func() error {
			_, err := env.svc.UpdateIntervention(ctx, env.user, intervention.ID, models.InterventionUpdate{Title: strPtr("Cambio de baterias")})
			return err
		}},
		{"complete intervention", models.ActionInterventionCompleted, func() error {
			_, err := env.svc.CompleteIntervention(ctx, env.user, intervention.ID, models.CompleteInterventionInput{})
			return err
		}},
		{"add intervention", models.ActionInterventionAdded, func() error {
			_, err := env.svc.AddIntervention(ctx, env.user, st.ID, models.InterventionInput{InterventionType: "preventivo", Title: "Limpieza", Description: "Pluviometro"})
			return err
		}},
		{"delete sensor", models.ActionSensorRemoved, func() error {
			return env.svc.DeleteSensor(ctx, env.user, sensor.ID)
		}},
		{"delete detail", models.ActionDetailRemoved, func() error {
			return env.svc.DeleteTechnicalDetail(ctx, env.user, detail.ID)
		}},
		{"delete router", models.ActionRouterRemoved, func() error {
			return env.svc.DeleteRouter(ctx, env.user, st.ID)
		}},
		{"delete breakdown", models.ActionBreakdownDeleted, func() error {
			return env.svc.DeleteBreakdown(ctx, env.admin, breakdown.ID)
		}},
		{"delete intervention", models.ActionInterventionDeleted, func() error {
			return env.svc.DeleteIntervention(ctx, env.admin, intervention.ID)
		}},
	}

	for _, step := range steps {
		before := env.historyCount(t, st.ID)
		if err := step.run(); err != nil {
			t.Fatalf("%s failed: %v", step.name, err)
		}
		records, err := env.svc.ListRecentHistory(ctx, env.user, st.ID, 1)
		if err != nil {
			t.Fatalf("ListRecentHistory failed: %v", err)
		}
		if n := env.historyCount(t, st.ID); n != before+1 {
			t.Errorf("%s: expected exactly one new record, got %d", step.name, n-before)
		}
		if len(records) != 1 || records[0].Action != step.action {
			t.Errorf("%s: expected latest action %s", step.name, step.action)
		}
	}
}

func TestChildOperationsOnMissingStation(t *testing.T) {
	env := setupTestService(t)
	ctx := context.Background()

	if _, err := env.svc.AddSensor(ctx, env.user, "st_missing", models.SensorInput{SensorType: "viento"}); !apierrors.IsNotFound(err) {
		t.Errorf("AddSensor: expected not found, got %v", err)
	}
	if _, err := env.svc.ConfigureRouter(ctx, env.user, "st_missing", models.RouterInput{Model: "RUT955"}); !apierrors.IsNotFound(err) {
		t.Errorf("ConfigureRouter: expected not found, got %v", err)
	}
	if _, err := env.svc.ReportBreakdown(ctx, env.user, "st_missing", models.BreakdownInput{Title: "x", Description: "y"}); !apierrors.IsNotFound(err) {
		t.Errorf("ReportBreakdown: expected not found, got %v", err)
	}
	if _, err := env.svc.ScheduleIntervention(ctx, env.user, "st_missing", models.InterventionInput{InterventionType: "a", Title: "b", Description: "c"}); !apierrors.IsNotFound(err) {
		t.Errorf("ScheduleIntervention: expected not found, got %v", err)
	}
	if _, err := env.svc.ListHistory(ctx, env.user, "st_missing"); !apierrors.IsNotFound(err) {
		t.Errorf("ListHistory: expected not found, got %v", err)
	}
}

func TestSensorStatusChangeCarriesValues(t *testing.T) {
	env := setupTestService(t)
	ctx := context.Background()
	st := env.station(t, "Tejeda")
	sensor, err := env.svc.AddSensor(ctx, env.user, st.ID, models.SensorInput{SensorType: "radiacion"})
	if err != nil {
		t.Fatalf("AddSensor failed: %v", err)
	}

	status := models.SensorCalibrating
	if _, err := env.svc.UpdateSensor(ctx, env.user, sensor.ID, models.SensorUpdate{Status: &status}); err != nil {
		t.Fatalf("UpdateSensor failed: %v", err)
	}
	records, err := env.svc.ListRecentHistory(ctx, env.user, st.ID, 1)
	if err != nil {
		t.Fatalf("ListRecentHistory failed: %v", err)
	}
	rec := records[0]
	if rec.FieldChanged == nil || *rec.FieldChanged != "status" {
		t.Fatal("expected status field on the sensor record")
	}
	if *rec.OldValue != string(models.SensorOperative) || *rec.NewValue != string(models.SensorCalibrating) {
		t.Errorf("unexpected values %s -> %s", *rec.OldValue, *rec.NewValue)
	}
}

func TestRouterIsSingletonPerStation(t *testing.T) {
	env := setupTestService(t)
	ctx := context.Background()
	st := env.station(t, "Betancuria")

	first, err := env.svc.ConfigureRouter(ctx, env.user, st.ID, models.RouterInput{Model: "RUT955", IPAddress: "192.168.1.1"})
	if err != nil {
		t.Fatalf("first ConfigureRouter failed: %v", err)
	}
	second, err := env.svc.ConfigureRouter(ctx, env.user, st.ID, models.RouterInput{Model: "RUT956", FirmwareVersion: "7.4", Status: models.RouterMaintenance})
	if err != nil {
		t.Fatalf("second ConfigureRouter failed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("expected router %s updated in place, got new id %s", first.ID, second.ID)
	}

	var n int
	if err := env.db.GetDB().Get(&n, "SELECT COUNT(*) FROM routers WHERE station_id = ?", st.ID); err != nil {
		t.Fatalf("failed to count routers: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 router row, got %d", n)
	}

	got, err := env.svc.GetRouter(ctx, env.user, st.ID)
	if err != nil {
		t.Fatalf("GetRouter failed: %v", err)
	}
	if got.Model != "RUT956" || got.IPAddress != "" || got.Status != models.RouterMaintenance {
		t.Errorf("expected full replacement of router fields, got %+v", got)
	}
}

func TestResolveBreakdownIsIrreversible(t *testing.T) {
	env := setupTestService(t)
	ctx := context.Background()
	st := env.station(t, "Orotava")
	b, err := env.svc.ReportBreakdown(ctx, env.user, st.ID, models.BreakdownInput{Title: "Anemometro parado", Description: "Rodamiento"})
	if err != nil {
		t.Fatalf("ReportBreakdown failed: %v", err)
	}
	if b.Resolved || b.Severity != models.SeverityMedium {
		t.Errorf("expected open breakdown with default severity, got %+v", b)
	}

	resolved, err := env.svc.ResolveBreakdown(ctx, env.admin, b.ID, models.ResolveBreakdownInput{ResolutionNotes: "Rodamiento cambiado"})
	if err != nil {
		t.Fatalf("ResolveBreakdown failed: %v", err)
	}
	if !resolved.Resolved || resolved.ResolvedDate == nil || resolved.ResolvedBy == nil || *resolved.ResolvedBy != env.admin.ID {
		t.Errorf("expected resolution stamped by %s, got %+v", env.admin.ID, resolved)
	}
	historyAfter := env.historyCount(t, st.ID)

	_, err = env.svc.ResolveBreakdown(ctx, env.user, b.ID, models.ResolveBreakdownInput{ResolutionNotes: "otra vez"})
	if !apierrors.IsValidation(err) {
		t.Fatalf("expected validation error on second resolve, got %v", err)
	}

	title := "Anemometro parado (revisado)"
	if _, err := env.svc.UpdateBreakdown(ctx, env.user, b.ID, models.BreakdownUpdate{Title: &title}); err != nil {
		t.Fatalf("UpdateBreakdown failed: %v", err)
	}

	got, err := env.svc.GetBreakdown(ctx, env.user, b.ID)
	if err != nil {
		t.Fatalf("GetBreakdown failed: %v", err)
	}
	if !got.Resolved || *got.ResolvedBy != env.admin.ID || *got.ResolutionNotes != "Rodamiento cambiado" {
		t.Errorf("expected resolution untouched, got %+v", got)
	}
	if !got.ResolvedDate.Equal(*resolved.ResolvedDate) {
		t.Errorf("expected resolved date %v, got %v", resolved.ResolvedDate, got.ResolvedDate)
	}
	if n := env.historyCount(t, st.ID); n != historyAfter+1 {
		t.Errorf("expected only the update to be recorded, got %d new records", n-historyAfter)
	}
}

func TestBreakdownDuration(t *testing.T) {
	env := setupTestService(t)
	ctx := context.Background()
	st := env.station(t, "Famara")
	b, err := env.svc.ReportBreakdown(ctx, env.user, st.ID, models.BreakdownInput{Title: "Sin senal", Description: "Antena"})
	if err != nil {
		t.Fatalf("ReportBreakdown failed: %v", err)
	}

	// open: only monotonicity holds
	later := b.ReportedDate.Add(time.Hour)
	if b.Duration(later) <= b.Duration(b.ReportedDate.Add(time.Minute)) {
		t.Error("expected open duration to grow with time")
	}

	resolved, err := env.svc.ResolveBreakdown(ctx, env.user, b.ID, models.ResolveBreakdownInput{})
	if err != nil {
		t.Fatalf("ResolveBreakdown failed: %v", err)
	}
	fixed := resolved.Duration(later)
	if resolved.Duration(later.Add(24*time.Hour)) != fixed {
		t.Error("expected resolved duration to be fixed")
	}
	if resolved.ResolutionNotes != nil {
		t.Error("expected empty notes to stay null")
	}
}

func TestBreakdownReadsCarryDuration(t *testing.T) {
	env := setupTestService(t)
	ctx := context.Background()
	st := env.station(t, "Jandia")
	b, err := env.svc.ReportBreakdown(ctx, env.user, st.ID, models.BreakdownInput{Title: "Bateria", Description: "Sin carga"})
	if err != nil {
		t.Fatalf("ReportBreakdown failed: %v", err)
	}

	// the test clock advances one second per reading
	first, err := env.svc.GetBreakdown(ctx, env.user, b.ID)
	if err != nil {
		t.Fatalf("GetBreakdown failed: %v", err)
	}
	second, err := env.svc.GetBreakdown(ctx, env.user, b.ID)
	if err != nil {
		t.Fatalf("GetBreakdown failed: %v", err)
	}
	if first.DurationSeconds <= 0 || second.DurationSeconds <= first.DurationSeconds {
		t.Errorf("expected growing open duration, got %d then %d", first.DurationSeconds, second.DurationSeconds)
	}

	resolved, err := env.svc.ResolveBreakdown(ctx, env.user, b.ID, models.ResolveBreakdownInput{})
	if err != nil {
		t.Fatalf("ResolveBreakdown failed: %v", err)
	}
	want := int64(resolved.ResolvedDate.Sub(resolved.ReportedDate) / time.Second)
	if resolved.DurationSeconds != want {
		t.Errorf("expected resolved duration %d, got %d", want, resolved.DurationSeconds)
	}

	list, err := env.svc.ListBreakdowns(ctx, env.user, st.ID)
	if err != nil || len(list) != 1 {
		t.Fatalf("ListBreakdowns: %v (%d)", err, len(list))
	}
	detail, err := env.svc.GetStationDetail(ctx, env.user, st.ID)
	if err != nil || len(detail.Breakdowns) != 1 {
		t.Fatalf("GetStationDetail: %v", err)
	}
	for _, got := range []*models.Breakdown{list[0], detail.Breakdowns[0]} {
		if got.DurationSeconds != want {
			t.Errorf("expected fixed duration %d after resolution, got %d", want, got.DurationSeconds)
		}
	}
}

func TestCompleteInterventionOnce(t *testing.T) {
	env := setupTestService(t)
	ctx := context.Background()
	st := env.station(t, "Guimar")

	scheduledFor := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	iv, err := env.svc.ScheduleIntervention(ctx, env.user, st.ID, models.InterventionInput{
		InterventionType: "preventivo",
		Title:            "Calibracion",
		Description:      "Calibrar termometros",
		ScheduledDate:    &scheduledFor,
	})
	if err != nil {
		t.Fatalf("ScheduleIntervention failed: %v", err)
	}
	if iv.IsCompleted() || iv.TechnicianName != nil || iv.PerformedBy != nil {
		t.Fatalf("expected scheduled intervention, got %+v", iv)
	}

	cost := 150.0
	done, err := env.svc.CompleteIntervention(ctx, env.user, iv.ID, models.CompleteInterventionInput{Cost: &cost})
	if err != nil {
		t.Fatalf("CompleteIntervention failed: %v", err)
	}
	if !done.IsCompleted() || done.TechnicianName == nil || *done.TechnicianName != env.user.Username {
		t.Errorf("expected completion by %s, got %+v", env.user.Username, done)
	}
	if done.PerformedBy == nil || *done.PerformedBy != env.user.ID || *done.Cost != cost {
		t.Errorf("expected performer and cost recorded, got %+v", done)
	}

	_, err = env.svc.CompleteIntervention(ctx, env.admin, iv.ID, models.CompleteInterventionInput{TechnicianName: "Otro"})
	if !apierrors.IsValidation(err) {
		t.Fatalf("expected validation error on second complete, got %v", err)
	}

	list, err := env.svc.ListInterventions(ctx, env.user, st.ID)
	if err != nil {
		t.Fatalf("ListInterventions failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected a single intervention row, got %d", len(list))
	}
	if *list[0].TechnicianName != env.user.Username || !list[0].InterventionDate.Equal(*done.InterventionDate) {
		t.Error("expected first completion to stand")
	}
	if !list[0].ScheduledDate.Equal(scheduledFor) {
		t.Errorf("expected scheduled date kept, got %v", list[0].ScheduledDate)
	}
}

func TestAddInterventionIsCompleted(t *testing.T) {
	env := setupTestService(t)
	ctx := context.Background()
	st := env.station(t, "Vallehermoso")

	iv, err := env.svc.AddIntervention(ctx, env.user, st.ID, models.InterventionInput{
		InterventionType: "correctivo",
		Title:            "Sustitucion de sensor",
		Description:      "Sensor de lluvia",
		TechnicianName:   "María",
	})
	if err != nil {
		t.Fatalf("AddIntervention failed: %v", err)
	}
	if !iv.IsCompleted() || *iv.TechnicianName != "María" || *iv.PerformedBy != env.user.ID {
		t.Errorf("expected completed intervention, got %+v", iv)
	}

	dash, err := env.svc.Dashboard(ctx, env.user)
	if err != nil {
		t.Fatalf("Dashboard failed: %v", err)
	}
	if dash.ScheduledInterventions != 0 {
		t.Errorf("expected no scheduled interventions, got %d", dash.ScheduledInterventions)
	}
}

func TestHistoryReads(t *testing.T) {
	env := setupTestService(t)
	ctx := context.Background()
	st := env.station(t, "Arona")
	for i := 0; i < 12; i++ {
		loc := "Sector " + string(rune('A'+i))
		if _, err := env.svc.UpdateStation(ctx, env.user, st.ID, models.StationUpdate{Location: &loc}); err != nil {
			t.Fatalf("UpdateStation failed: %v", err)
		}
	}

	all, err := env.svc.ListHistory(ctx, env.user, st.ID)
	if err != nil {
		t.Fatalf("ListHistory failed: %v", err)
	}
	if len(all) != 13 {
		t.Fatalf("expected 13 records, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].CreatedAt.After(all[i-1].CreatedAt) {
			t.Fatal("expected newest first")
		}
	}
	if all[len(all)-1].Action != models.ActionCreated {
		t.Error("expected creation record last")
	}

	recent, err := env.svc.ListRecentHistory(ctx, env.user, st.ID, 0)
	if err != nil {
		t.Fatalf("ListRecentHistory failed: %v", err)
	}
	if len(recent) != recentHistoryLimit || recent[0].ID != all[0].ID {
		t.Errorf("expected default of %d newest records, got %d", recentHistoryLimit, len(recent))
	}

	if err := env.svc.PurgeHistory(ctx, env.admin, all[0].ID); err != nil {
		t.Fatalf("PurgeHistory failed: %v", err)
	}
	if n := env.historyCount(t, st.ID); n != 12 {
		t.Errorf("expected purge to remove exactly one record without adding one, got %d", n)
	}
	if err := env.svc.PurgeHistory(ctx, env.admin, all[0].ID); !apierrors.IsNotFound(err) {
		t.Errorf("expected not found on second purge, got %v", err)
	}
	if env.monitor.get("history_purged") != 1 {
		t.Error("expected purge to be counted")
	}
}
