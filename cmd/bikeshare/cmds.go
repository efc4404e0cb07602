package main

import (
	"encoding/json"
	"fmt"
	"github.com/spf13/cobra"
	"go-ml.dev/pkg/bikeshare/api"
	"go-ml.dev/pkg/bikeshare/artifact"
	"go-ml.dev/pkg/bikeshare/config"
	"go-ml.dev/pkg/bikeshare/dataset"
	"go-ml.dev/pkg/bikeshare/driver"
	"go-ml.dev/pkg/bikeshare/fu"
	"go-ml.dev/pkg/iokit"
	"go-ml.dev/pkg/zorros/zlog"
	"net/http"
	"os"
)

func fatal(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
	os.Exit(1)
}

// Represents the state used when processing a command.
type action struct {
	cmd *cobra.Command
	cfg *config.Config
}

func newAction(cmd *cobra.Command) *action {
	a := &action{cmd: cmd}
	a.cfg = config.Default()
	if fname := a.getString("config"); fname != "" {
		cfg, err := config.Load(fname)
		if err != nil {
			fatal("%v", err)
		}
		a.cfg = cfg
	}
	return a
}

func (a *action) getBool(name string) bool {
	result, _ := a.cmd.Flags().GetBool(name)
	return result
}

func (a *action) getString(name string) string {
	result, _ := a.cmd.Flags().GetString(name)
	return result
}

func (a *action) getStringArray(name string) []string {
	result, _ := a.cmd.Flags().GetStringArray(name)
	return result
}

func (a *action) version() string {
	return fu.Fnzs(a.getString("version"), a.cfg.App.Version)
}

func (a *action) manager() *artifact.Manager {
	app := a.cfg.App
	store, err := artifact.OpenStore(app.ArtifactStore, app.ArtifactDir, app.ArtifactDSN)
	if err != nil {
		fatal("%v", err)
	}
	return artifact.NewManager(store, app.PipelineSaveFile)
}

func (a *action) predictor() *driver.Predictor {
	p, err := driver.Load(a.manager(), a.cfg, a.version())
	if err != nil {
		fatal("%v", err)
	}
	return p
}

func printJSON(v interface{}) {
	e := json.NewEncoder(os.Stdout)
	e.SetIndent("", "  ")
	if err := e.Encode(v); err != nil {
		fatal("%v", err)
	}
}

func train(cmd *cobra.Command, args []string) {
	a := newAction(cmd)
	data, err := dataset.LoadCSV(fu.Fnzs(a.getString("data"), a.cfg.App.TrainingDataFile))
	if err != nil {
		fatal("%v", err)
	}
	t := driver.Training{
		Config:    a.cfg,
		Source:    data,
		Manager:   a.manager(),
		Version:   a.version(),
		KeepStale: a.getBool("keep-stale"),
	}
	if export := a.getString("export"); export != "" {
		t.ModelFile = iokit.File(fu.ArtifactPath(export))
	}
	if !a.getBool("quiet") {
		t.Verbose = func(s string) { fmt.Println(s) }
	}
	report, err := t.Run()
	if err != nil {
		fatal("%v", err)
	}
	printJSON(report)
}

func predict(cmd *cobra.Command, args []string) {
	a := newAction(cmd)
	data, err := dataset.LoadCSV(args[0])
	if err != nil {
		fatal("%v", err)
	}
	res, err := a.predictor().Predict(data)
	if err != nil {
		fatal("%v", err)
	}
	printJSON(res)
	if len(res.Errors) > 0 {
		os.Exit(2)
	}
}

func serve(cmd *cobra.Command, args []string) {
	a := newAction(cmd)
	p := a.predictor()
	addr := a.getString("addr")
	zlog.Info(fmt.Sprintf("serving pipeline %v on %v", p.Version(), addr))
	if err := http.ListenAndServe(addr, api.NewHandler(p).Router(a.getStringArray("origin")...)); err != nil {
		fatal("%v", err)
	}
}

func cleanup(cmd *cobra.Command, args []string) {
	a := newAction(cmd)
	deleted, err := a.manager().Cleanup(a.version())
	if err != nil {
		fatal("%v", err)
	}
	for _, k := range deleted {
		fmt.Println(k)
	}
}

func listVersions(cmd *cobra.Command, args []string) {
	a := newAction(cmd)
	versions, err := a.manager().Versions()
	if err != nil {
		fatal("%v", err)
	}
	for _, v := range versions {
		fmt.Println(v)
	}
}
