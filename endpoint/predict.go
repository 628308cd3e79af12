package endpoint

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ariebrainware/biosecure-portal/middleware"
	"github.com/ariebrainware/biosecure-portal/model"
	"github.com/ariebrainware/biosecure-portal/util"
	"github.com/gin-gonic/gin"
)

type PredictRequest struct {
	Species       string `json:"species" example:"Pig"`
	ClinicalSigns string `json:"clinical_signs" example:"fever, lethargy"`
	DaysNotWell   int    `json:"days_not_well" example:"3"`
}

type PredictResponse struct {
	Prediction map[string]string `json:"prediction"`
	// Query is the recorded disease query; only vet shop predictions are recorded.
	Query *model.DiseaseQuery `json:"query,omitempty"`
}

// Predict godoc
// @Summary      Predict a disease
// @Description  Run the disease model on species, clinical signs and days unwell. Predictions made by a vet shop are recorded as disease queries, with the current farmer when one is set.
// @Tags         Prediction
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        request body PredictRequest true "Symptoms"
// @Success      200 {object} util.APIResponse{data=PredictResponse} "Predicted Disease"
// @Failure      400 {object} util.APIResponse "Invalid species or days not well"
// @Failure      401 {object} util.APIResponse "Not logged in"
// @Failure      500 {object} util.APIResponse "Query could not be recorded"
// @Failure      503 {object} util.APIResponse "Model Error"
// @Router       /predict [post]
func Predict(c *gin.Context) {
	s, ok := getSessionOrRespond(c)
	if !ok {
		return
	}
	var req PredictRequest
	if !bindJSONOrRespond(c, &req) {
		return
	}

	in := model.SymptomInput{
		Species:       strings.TrimSpace(req.Species),
		ClinicalSigns: strings.TrimSpace(req.ClinicalSigns),
		DaysNotWell:   req.DaysNotWell,
	}
	if !model.IsSpecies(in.Species) {
		util.CallUserError(c, util.APIErrorParams{
			Msg: translateMsg(c, "Select Species"),
			Err: fmt.Errorf("unknown species %q", in.Species),
		})
		return
	}
	if err := in.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	ctx := c.Request.Context()
	prediction, fields, err := runPrediction(c, in)
	if err != nil {
		util.LogActivity(ctx, util.ActivityEvent{
			EventType: util.EventPredictionFailure,
			Actor:     s.Phone(),
			Role:      s.Role,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			Message:   fmt.Sprintf("Prediction failed: %v", err),
		})
		util.CallServiceUnavailable(c, util.APIErrorParams{
			Msg: fmt.Sprintf("%s: %v", translateMsg(c, msgModelError), err),
			Err: err,
		})
		return
	}

	resp := PredictResponse{Prediction: prediction}
	if s.Role == model.RoleVetShop && s.Shop != nil {
		q, ok := recordQuery(c, s.Shop, s.CurrentFarmer, in, prediction)
		if !ok {
			return
		}
		resp.Query = q
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  fmt.Sprintf("✅ %s: %s", translateMsg(c, "Predicted Disease"), formatPrediction(prediction, fields)),
		Data: resp,
	})
}

func runPrediction(c *gin.Context, in model.SymptomInput) (map[string]string, []string, error) {
	p, ok := middleware.GetPredictor(c)
	if !ok {
		return nil, nil, errors.New("prediction model not loaded")
	}
	prediction, err := p.Predict(in)
	if err != nil {
		return nil, nil, err
	}
	return prediction, p.OutputFields(), nil
}

// recordQuery appends the disease query for a vet shop prediction.
func recordQuery(c *gin.Context, shop *model.VetShop, farmer *model.FarmerSnapshot, in model.SymptomInput, prediction map[string]string) (*model.DiseaseQuery, bool) {
	st, ok := getStoreOrRespond(c)
	if !ok {
		return nil, false
	}

	q := &model.DiseaseQuery{
		ShopName:   shop.ShopName,
		Phone:      shop.Phone,
		Location:   shop.Location,
		InputData:  in,
		Prediction: prediction,
		Timestamp:  time.Now().UTC(),
	}
	if farmer != nil {
		snapshot := *farmer
		q.Farmer = &snapshot
	}

	ctx := c.Request.Context()
	if err := st.CreateDiseaseQuery(ctx, q); err != nil {
		respondStoreError(c, err, "Failed to record disease query")
		return nil, false
	}
	util.LogActivity(ctx, util.ActivityEvent{
		EventType: util.EventQueryRecorded,
		Actor:     shop.Phone,
		Role:      model.RoleVetShop,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Message:   "Disease query recorded",
		Details:   map[string]interface{}{"query_id": q.ID, "location": q.Location},
	})
	return q, true
}

// formatPrediction renders "field: label" pairs in the model's output order. Fields the
// model did not declare follow, sorted.
func formatPrediction(prediction map[string]string, order []string) string {
	parts := make([]string, 0, len(prediction))
	seen := make(map[string]bool, len(order))
	for _, f := range order {
		if label, ok := prediction[f]; ok && !seen[f] {
			seen[f] = true
			parts = append(parts, fmt.Sprintf("%s: %s", f, label))
		}
	}

	var rest []string
	for f := range prediction {
		if !seen[f] {
			rest = append(rest, f)
		}
	}
	sort.Strings(rest)
	for _, f := range rest {
		parts = append(parts, fmt.Sprintf("%s: %s", f, prediction[f]))
	}
	return strings.Join(parts, ", ")
}
