package api

import (
	"encoding/json"
	"go-ml.dev/pkg/bikeshare/config"
	"go-ml.dev/pkg/bikeshare/dataset"
	"go-ml.dev/pkg/bikeshare/driver"
	"go-ml.dev/pkg/bikeshare/model"
	"go-ml.dev/pkg/bikeshare/pipeline"
	"gotest.tools/assert"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const record = `{"dteday": "2012-11-29", "season": "fall", "hr": "6pm", "holiday": "No",
	"weekday": null, "workingday": "Yes", "weathersit": "Clear",
	"temp": 16, "atemp": 17.5, "hum": 30, "windspeed": 10}`

func server(t *testing.T) *httptest.Server {
	cfg := config.Default()
	cfg.Model.Regressor = "ridge"
	cfg.Model.Params = model.Params{"alpha": 1}
	p, err := pipeline.New(cfg)
	assert.NilError(t, err)
	q, y, err := dataset.Target(dataset.Synthetic(300, 1), "cnt")
	assert.NilError(t, err)
	assert.NilError(t, p.Fit(q, y))
	s := httptest.NewServer(NewHandler(driver.NewPredictor(p, cfg, "0.0.1")).Router("http://localhost:3000"))
	t.Cleanup(s.Close)
	return s
}

func post(t *testing.T, s *httptest.Server, body string) (int, map[string]interface{}) {
	resp, err := http.Post(s.URL+"/predict", "application/json", strings.NewReader(body))
	assert.NilError(t, err)
	defer resp.Body.Close()
	r := map[string]interface{}{}
	if resp.Header.Get("Content-Type") == "application/json" {
		assert.NilError(t, json.NewDecoder(resp.Body).Decode(&r))
	}
	return resp.StatusCode, r
}

func Test_Predict1(t *testing.T) {
	s := server(t)
	status, r := post(t, s, record)
	assert.Assert(t, status == http.StatusOK)
	assert.Assert(t, r["version"] == "0.0.1")
	assert.Assert(t, len(r["predictions"].([]interface{})) == 1)
	assert.Assert(t, len(r["errors"].([]interface{})) == 0)

	status, r = post(t, s, "["+record+","+record+"]")
	assert.Assert(t, status == http.StatusOK)
	p := r["predictions"].([]interface{})
	assert.Assert(t, len(p) == 2)
	assert.Assert(t, p[0] == p[1])
}

func Test_Predict2(t *testing.T) {
	s := server(t)
	status, r := post(t, s, strings.Replace(record, `"Clear"`, `"Snow"`, 1))
	assert.Assert(t, status == http.StatusUnprocessableEntity)
	assert.Assert(t, r["predictions"] == nil)
	e := r["errors"].([]interface{})[0].(map[string]interface{})
	assert.Assert(t, e["column"] == "weathersit")
	assert.Assert(t, e["row"] == 0.0)
	assert.Assert(t, e["reason"] == "unrecognized category")

	status, _ = post(t, s, `{"temp": 1}`)
	assert.Assert(t, status == http.StatusUnprocessableEntity)

	status, _ = post(t, s, `{"temp": `)
	assert.Assert(t, status == http.StatusBadRequest)
	status, _ = post(t, s, `"text"`)
	assert.Assert(t, status == http.StatusBadRequest)
}

func Test_Version1(t *testing.T) {
	s := server(t)
	resp, err := http.Get(s.URL + "/version")
	assert.NilError(t, err)
	defer resp.Body.Close()
	v := map[string]string{}
	assert.NilError(t, json.NewDecoder(resp.Body).Decode(&v))
	assert.Assert(t, v["version"] == "0.0.1")

	resp, err = http.Get(s.URL + "/health")
	assert.NilError(t, err)
	resp.Body.Close()
	assert.Assert(t, resp.StatusCode == http.StatusOK)

	req, err := http.NewRequest("OPTIONS", s.URL+"/predict", nil)
	assert.NilError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	resp, err = http.DefaultClient.Do(req)
	assert.NilError(t, err)
	resp.Body.Close()
	assert.Assert(t, resp.Header.Get("Access-Control-Allow-Origin") == "http://localhost:3000")
}

func Test_Predict3(t *testing.T) {
	s := server(t)
	status, r := post(t, s, strings.Replace(record, `"Clear"`, `null`, 1))
	assert.Assert(t, status == http.StatusUnprocessableEntity)
	assert.Assert(t, strings.Contains(r["error"].(string), "no observed values"))
}
