package core

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mlopshq/driftmon/internal/contract"
	"github.com/mlopshq/driftmon/internal/outwriter"
	"github.com/mlopshq/driftmon/schema"
)

// Local artifact names shared between the train, dataset and inference
// commands. Everything lands in the working directory.
const (
	TrainCSVName      = "train.csv"
	InferenceCSVName  = "inference_batch.csv"
	ModelArtifactName = "model.json"

	trainTableDir     = "train_mltable"
	inferenceTableDir = "inference_mltable"
)

// TrainTableAssetName is the registered name of the training MLTable asset
// derived from a dataset name.
func TrainTableAssetName(dataset string) string {
	return dataset + "_mltable"
}

// InferenceTableAssetName is the registered name of the inference MLTable asset.
func InferenceTableAssetName() string {
	return "inference_batch_mltable"
}

// ModelAssetName is the registered name of the model derived from a dataset name.
func ModelAssetName(dataset string) string {
	return dataset + "_model"
}

// ExecuteTrainRegister generates a synthetic training dataset, fits a
// logistic-regression model on it, and registers both with the workspace.
// It serves as the main entry point for the 'train' command.
func ExecuteTrainRegister(ctx context.Context, cfg *contract.Config, assets contract.AssetRegistrar, runs contract.RunManager) error {
	ds := GenerateClassification(cfg.SampleCount, cfg.FeatureCount, cfg.Seed)
	if err := ds.WriteCSV(TrainCSVName); err != nil {
		return err
	}
	fmt.Printf("Wrote %d samples x %d features to %s\n", len(ds.Rows), len(ds.Features), TrainCSVName)

	model, err := TrainLogistic(ds)
	if err != nil {
		return err
	}
	if err := model.Save(ModelArtifactName); err != nil {
		return err
	}
	fmt.Printf("Trained model (accuracy %.*f) saved to %s\n", cfg.Precision+2, model.Accuracy(ds), ModelArtifactName)

	dataAsset := &schema.DataAsset{
		Name:        cfg.BaselineDataset,
		Path:        TrainCSVName,
		Type:        schema.URIFileAsset,
		Description: "Synthetic training data for drift monitoring",
	}
	created, err := assets.UpsertData(ctx, dataAsset)
	if err != nil {
		return fmt.Errorf("failed to register training dataset %s: %w", dataAsset.Name, err)
	}
	recordRun(runs, "train", "data", created.Name, created.Version, created)
	fmt.Printf("Registered dataset %s\n", assetLabel(created.Name, created.Version))

	modelAsset := &schema.ModelAsset{
		Name:        ModelAssetName(cfg.BaselineDataset),
		Path:        ModelArtifactName,
		Description: "Logistic-regression classifier over the synthetic training data",
	}
	createdModel, err := assets.UpsertModel(ctx, modelAsset)
	if err != nil {
		return fmt.Errorf("failed to register model %s: %w", modelAsset.Name, err)
	}
	recordRun(runs, "train", "model", createdModel.Name, createdModel.Version, createdModel)
	fmt.Printf("Registered model %s\n", assetLabel(createdModel.Name, createdModel.Version))
	return nil
}

// ExecuteDatasetRegister wraps the training and inference CSVs into MLTable
// folders and registers both as mltable assets, the form the monitoring
// signals consume. It serves as the main entry point for 'dataset register'.
func ExecuteDatasetRegister(ctx context.Context, cfg *contract.Config, assets contract.AssetRegistrar, runs contract.RunManager) error {
	tables := []struct {
		csvPath string
		dir     string
		name    string
		hint    string
	}{
		{TrainCSVName, trainTableDir, TrainTableAssetName(cfg.BaselineDataset), "driftmon train"},
		{InferenceCSVName, inferenceTableDir, InferenceTableAssetName(), "driftmon inference upload"},
	}

	for _, tbl := range tables {
		if _, err := os.Stat(tbl.csvPath); err != nil {
			return fmt.Errorf("%s not found: run '%s' first", tbl.csvPath, tbl.hint)
		}
		dir, err := BuildMLTableDir(tbl.csvPath, tbl.dir)
		if err != nil {
			return err
		}

		asset := &schema.DataAsset{
			Name:        tbl.name,
			Path:        dir,
			Type:        schema.MLTableAsset,
			Description: "MLTable wrapper over " + tbl.csvPath,
		}
		created, err := assets.UpsertData(ctx, asset)
		if err != nil {
			return fmt.Errorf("failed to register mltable asset %s: %w", asset.Name, err)
		}
		recordRun(runs, "dataset register", "data", created.Name, created.Version, created)
		fmt.Printf("Registered mltable %s from %s\n", assetLabel(created.Name, created.Version), dir)
	}
	return nil
}

// ExecuteInferenceUpload generates a simulated inference batch and registers
// it under the configured datastore path. It serves as the main entry point
// for the 'inference upload' command.
func ExecuteInferenceUpload(ctx context.Context, cfg *contract.Config, assets contract.AssetRegistrar, runs contract.RunManager) error {
	ds := GenerateInferenceBatch(cfg.SampleCount, cfg.FeatureCount, cfg.Seed)
	if err := ds.WriteCSV(InferenceCSVName); err != nil {
		return err
	}
	fmt.Printf("Wrote %d inference rows to %s\n", len(ds.Rows), InferenceCSVName)

	asset := &schema.DataAsset{
		Name:        "inference_batch",
		Path:        schema.DatastorePathReference(cfg.Datastore, cfg.InferencePath) + InferenceCSVName,
		Type:        schema.URIFileAsset,
		Description: "Simulated production inference batch",
	}
	created, err := assets.UpsertData(ctx, asset)
	if err != nil {
		return fmt.Errorf("failed to register inference batch: %w", err)
	}
	recordRun(runs, "inference upload", "data", created.Name, created.Version, created)
	fmt.Printf("Registered inference batch %s at %s\n", assetLabel(created.Name, created.Version), asset.Path)
	return nil
}

// ExecuteMonitorCreate builds the drift-signal and monitor-schedule
// descriptors and registers them through the client. It serves as the main
// entry point for the 'monitor create' command.
func ExecuteMonitorCreate(ctx context.Context, cfg *contract.Config, signals contract.SignalRegistrar, schedules contract.ScheduleRegistrar, runs contract.RunManager) error {
	signal, err := BuildDriftSignal(ctx, signals, DriftSignalParams{
		Name:            cfg.SignalName,
		BaselineDataset: cfg.BaselineDataset,
		DatastoreName:   cfg.Datastore,
		Path:            cfg.InferencePath,
		Features:        cfg.Features,
		Metric:          cfg.Metric,
		Threshold:       cfg.Threshold,
	})
	if err != nil {
		return fmt.Errorf("failed to create drift signal %s: %w", cfg.SignalName, err)
	}
	recordRun(runs, "monitor create", "signal", signal.Name, "", signal)
	fmt.Printf("Created signal %s (%s, threshold %.*f)\n", signal.Name, signal.Metric, cfg.Precision, signal.Threshold)
	dumpDebugJSON(cfg, signal)

	sched, err := BuildMonitorSchedule(ctx, schedules, MonitorScheduleParams{
		Name:        cfg.ScheduleName,
		SignalName:  signal.Name,
		Frequency:   cfg.Frequency,
		Description: cfg.Description,
	})
	if err != nil {
		return fmt.Errorf("failed to create monitor schedule %s: %w", cfg.ScheduleName, err)
	}
	recordRun(runs, "monitor create", "schedule", sched.Name, "", sched)
	fmt.Printf("Created schedule %s (every %s)\n", sched.Name, sched.Frequency)
	dumpDebugJSON(cfg, sched)
	return nil
}

// ExecuteMonitorDeploy assembles the full monitor schedule resource and
// submits it. It serves as the main entry point for 'monitor deploy'.
func ExecuteMonitorDeploy(ctx context.Context, cfg *contract.Config, deployer contract.MonitorDeployer, runs contract.RunManager) error {
	summary, err := DeployMonitor(ctx, deployer, MonitorResourceParams{
		ScheduleName:     cfg.ScheduleName,
		SignalName:       cfg.SignalName,
		ReferenceDataset: TrainTableAssetName(cfg.BaselineDataset),
		ProductionDs:     InferenceTableAssetName(),
		Features:         cfg.Features,
		Threshold:        cfg.Threshold,
		Frequency:        cfg.Frequency,
		AlertEmail:       cfg.AlertEmail,
	})
	if err != nil {
		return err
	}
	recordRun(runs, "monitor deploy", "monitorSchedule", summary.Name, "", summary)

	fmt.Printf("Deployed monitor %s: %s\n", summary.Name, stateLabel(cfg, summary.ProvisioningState))
	fmt.Printf("Monitoring studio: %s\n", schema.StudioMonitoringURL(cfg.SubscriptionID, cfg.ResourceGroup, cfg.Workspace))
	return nil
}

// ExecuteMonitorVerify lists the workspace schedules and renders them in the
// configured output format. It serves as the main entry point for
// 'monitor verify'.
func ExecuteMonitorVerify(ctx context.Context, cfg *contract.Config, lister contract.ScheduleLister) error {
	start := time.Now()
	schedules, err := lister.ListSchedules(ctx)
	if err != nil {
		return fmt.Errorf("failed to list schedules: %w", err)
	}
	duration := time.Since(start)

	if err := outwriter.WriteScheduleResults(schedules, cfg, duration); err != nil {
		return err
	}
	fmt.Printf("Monitoring studio: %s\n", schema.StudioMonitoringURL(cfg.SubscriptionID, cfg.ResourceGroup, cfg.Workspace))
	return nil
}

// DefaultProbeReportFile is where 'monitor probe' saves the full result set
// when no output file is configured.
const DefaultProbeReportFile = "monitor_api_probe.json"

// ExecuteMonitorProbe sweeps the known api-versions across the monitoring
// endpoints, prints the outcome and saves the full result set to a JSON
// report. It serves as the main entry point for 'monitor probe'.
func ExecuteMonitorProbe(ctx context.Context, cfg *contract.Config, prober contract.APIProber) error {
	results := make([]schema.ProbeResult, 0, len(schema.ProbeAPIVersions)*len(schema.ProbeEndpoints))
	for _, version := range schema.ProbeAPIVersions {
		for _, endpoint := range schema.ProbeEndpoints {
			result, err := prober.Probe(ctx, version, endpoint)
			if err != nil {
				return fmt.Errorf("probe %s %s failed: %w", version, endpoint, err)
			}
			results = append(results, result)
		}
	}

	if err := outwriter.WriteProbeResults(results, cfg); err != nil {
		return err
	}

	reportFile := cfg.OutputFile
	if reportFile == "" || cfg.Output == schema.TextOut {
		reportFile = DefaultProbeReportFile
		if err := saveProbeReport(results, reportFile); err != nil {
			return err
		}
		fmt.Printf("Full probe report saved to %s\n", reportFile)
	}
	return nil
}

// saveProbeReport writes the complete probe result set as indented JSON.
func saveProbeReport(results []schema.ProbeResult, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create probe report %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("failed to encode probe report: %w", err)
	}
	return nil
}

// recordRun persists a created resource into the run store, when one is
// configured. Tracking failures warn rather than fail the command.
func recordRun(runs contract.RunManager, command, kind, name, version string, payload any) {
	if runs == nil {
		return
	}
	store := runs.GetRunStore()
	if store == nil {
		return
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		contract.LogWarn("Run tracking payload encoding failed", err)
		return
	}
	rec := &schema.RunRecord{
		Command:           command,
		ResourceKind:      kind,
		ResourceName:      name,
		ResourceVersion:   version,
		ProvisioningState: contract.SucceededValue,
		Payload:           string(raw),
		CreatedAt:         time.Now().UTC(),
	}
	if err := store.RecordRun(rec); err != nil {
		contract.LogWarn("Run tracking failed", err)
	}
}

// dumpDebugJSON prints the created object as indented JSON when HTTP
// debugging is on, mirroring what goes over the wire.
func dumpDebugJSON(cfg *contract.Config, v any) {
	if !cfg.DebugHTTP {
		return
	}
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		contract.LogWarn("Debug dump failed", err)
		return
	}
	fmt.Println(string(raw))
}

// stateLabel picks the colored or plain provisioning-state label.
func stateLabel(cfg *contract.Config, state string) string {
	if cfg.UseColors {
		return contract.GetColorStateLabel(state)
	}
	return contract.GetPlainStateLabel(state)
}

// assetLabel renders "name:version", or just the name when the workspace did
// not report a version.
func assetLabel(name, version string) string {
	if version == "" {
		return name
	}
	return name + ":" + version
}
