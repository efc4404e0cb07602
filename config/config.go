/*
Package config defines the immutable configuration object of bike-sharing pipeline
*/
package config

import (
	"go-ml.dev/pkg/bikeshare/model"
	"go-ml.dev/pkg/bikeshare/tables"
	"go-ml.dev/pkg/zorros"
	"gopkg.in/yaml.v3"
	"io/ioutil"
	"sort"
)

/*
Config is the whole configuration, app_config and model_config sections
*/
type Config struct {
	App   AppConfig   `yaml:"app_config"`
	Model ModelConfig `yaml:"model_config"`
}

/*
AppConfig describes files and storage of artifacts
*/
type AppConfig struct {
	PackageName      string `yaml:"package_name"`
	TrainingDataFile string `yaml:"training_data_file"`
	PipelineSaveFile string `yaml:"pipeline_save_file"`
	Version          string `yaml:"version"`
	ArtifactStore    string `yaml:"artifact_store"` // file, sqlite3, postgres
	ArtifactDir      string `yaml:"artifact_dir"`
	ArtifactDSN      string `yaml:"artifact_dsn"`
}

/*
Mapping is a closed mapping of category labels to integer codes of one column
*/
type Mapping struct {
	Column string         `yaml:"column"`
	Codes  map[string]int `yaml:"codes"`
}

/*
Labels returns sorted labels of the mapping
*/
func (m Mapping) Labels() []string {
	r := make([]string, 0, len(m.Codes))
	for k := range m.Codes {
		r = append(r, k)
	}
	sort.Strings(r)
	return r
}

/*
ModelConfig describes columns, transforms and regressor
*/
type ModelConfig struct {
	Target          string       `yaml:"target"`
	Features        []string     `yaml:"features"`
	UnusedFields    []string     `yaml:"unused_fields"`
	DateVar         string       `yaml:"date_var"`
	WeekdayVar      string       `yaml:"weekday_var"`
	WeathersitVar   string       `yaml:"weathersit_var"`
	YearVar         string       `yaml:"year_var"`
	MonthVar        string       `yaml:"month_var"`
	Mappings        []Mapping    `yaml:"mappings"`
	NumericalFields []string     `yaml:"numerical_fields"`
	OptionalFields  []string     `yaml:"optional_fields"` // numeric columns accepted but not required
	WeekdayOneHot   []string     `yaml:"weekday_one_hot"`
	TestSize        float64      `yaml:"test_size"`
	RandomState     int64        `yaml:"random_state"`
	StatsPolicy     string       `yaml:"stats_policy"` // batch or frozen
	Regressor       string       `yaml:"regressor"`    // random_forest or ridge
	Params          model.Params `yaml:"params"`
}

/*
Mapping returns mapping of the column
*/
func (m ModelConfig) Mapping(column string) (Mapping, bool) {
	for _, x := range m.Mappings {
		if x.Column == column {
			return x, true
		}
	}
	return Mapping{}, false
}

/*
Load reads YAML file and overlays it on defaults
*/
func Load(path string) (*Config, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, zorros.Trace(err)
	}
	return Parse(b)
}

/*
Parse overlays YAML text on defaults and validates result
*/
func Parse(b []byte) (*Config, error) {
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, zorros.Wrapf(err, "failed to parse config: %v", err.Error())
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

/*
Validate checks config consistency
*/
func (c *Config) Validate() error {
	m := c.Model
	if m.Target == "" {
		return zorros.Errorf("config: target is not specified")
	}
	if m.DateVar == "" || m.WeekdayVar == "" || m.WeathersitVar == "" {
		return zorros.Errorf("config: date_var, weekday_var and weathersit_var are required")
	}
	if len(m.WeekdayOneHot) == 0 {
		return zorros.Errorf("config: weekday_one_hot is empty")
	}
	if m.TestSize <= 0 || m.TestSize >= 1 {
		return zorros.Errorf("config: test_size must be in (0,1), got %v", m.TestSize)
	}
	switch m.StatsPolicy {
	case "", "batch", "frozen":
	default:
		return zorros.Errorf("config: unknown stats_policy `%v`", m.StatsPolicy)
	}
	switch m.Regressor {
	case "", "random_forest", "ridge":
	default:
		return zorros.Errorf("config: unknown regressor `%v`", m.Regressor)
	}
	seen := map[string]bool{}
	for _, x := range m.Mappings {
		if x.Column == "" || len(x.Codes) == 0 {
			return zorros.Errorf("config: mapping without column or codes")
		}
		if seen[x.Column] {
			return zorros.Errorf("config: duplicate mapping for `%v`", x.Column)
		}
		seen[x.Column] = true
	}
	return nil
}

/*
Schema returns column specs of raw input records
*/
func (c *Config) Schema() []tables.Spec {
	m := c.Model
	specs := []tables.Spec{}
	required := map[string]bool{}
	for _, f := range m.Features {
		required[f] = true
	}
	numeric := map[string]bool{}
	for _, f := range m.NumericalFields {
		numeric[f] = true
	}
	for _, f := range m.Features {
		s := tables.Spec{Name: f, Required: true}
		switch {
		case f == m.DateVar:
			s.Domain = tables.Date
		case f == m.WeekdayVar:
			s.Categories = append([]string(nil), m.WeekdayOneHot...)
			s.Nullable = true
		case numeric[f]:
			s.Domain = tables.Continuous
		default:
			mp, ok := m.Mapping(f)
			if !ok {
				s.Domain = tables.Continuous
				break
			}
			s.Categories = mp.Labels()
			s.Nullable = f == m.WeathersitVar
		}
		specs = append(specs, s)
	}
	for _, f := range m.OptionalFields {
		if !required[f] {
			specs = append(specs, tables.Spec{Name: f, Domain: tables.Continuous, Nullable: true})
		}
	}
	if !required[m.Target] {
		specs = append(specs, tables.Spec{Name: m.Target, Domain: tables.Continuous})
	}
	return specs
}
