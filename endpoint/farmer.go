package endpoint

import (
	"strings"

	"github.com/ariebrainware/biosecure-portal/model"
	"github.com/ariebrainware/biosecure-portal/util"
	"github.com/gin-gonic/gin"
)

type AddFarmerRequest struct {
	FarmerName  string `json:"farmer_name" example:"Ravi"`
	FarmerPhone string `json:"farmer_phone" example:"9123456789"`
}

// AddFarmer godoc
// @Summary      Register a farmer
// @Description  Register a farmer for the logged in vet shop. The farmer becomes the current farmer and is attached to later disease queries.
// @Tags         Farmer
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        request body AddFarmerRequest true "Farmer details"
// @Success      200 {object} util.APIResponse{data=model.Farmer} "Farmer added successfully"
// @Failure      400 {object} util.APIResponse "Invalid phone number"
// @Failure      401 {object} util.APIResponse "Not logged in"
// @Failure      403 {object} util.APIResponse "Vet shops only"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /farmers [post]
func AddFarmer(c *gin.Context) {
	s, ok := getSessionOrRespond(c)
	if !ok {
		return
	}
	var req AddFarmerRequest
	if !bindJSONOrRespond(c, &req) {
		return
	}

	farmer := &model.Farmer{
		ShopName:    s.Shop.ShopName,
		FarmerName:  util.NormalizeName(req.FarmerName),
		FarmerPhone: strings.TrimSpace(req.FarmerPhone),
	}
	if err := model.ValidatePhone(farmer.FarmerPhone); err != nil {
		util.CallUserError(c, util.APIErrorParams{Msg: translateMsg(c, msgInvalidFarmerPhone), Err: err})
		return
	}
	if err := farmer.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	st, ok := getStoreOrRespond(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if err := st.CreateFarmer(ctx, farmer); err != nil {
		respondStoreError(c, err, "Failed to add farmer")
		return
	}
	s.SetCurrentFarmer(farmer.Snapshot())

	util.LogActivity(ctx, util.ActivityEvent{
		EventType: util.EventFarmerAdded,
		Actor:     s.Phone(),
		Role:      s.Role,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Message:   "Farmer added",
		Details:   map[string]interface{}{"farmer_id": farmer.ID},
	})

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  translateMsg(c, "✅ Farmer added successfully!"),
		Data: farmer,
	})
}

// ListFarmers godoc
// @Summary      List farmers
// @Description  Farmers registered by the logged in vet shop
// @Tags         Farmer
// @Produce      json
// @Security     SessionToken
// @Success      200 {object} util.APIResponse{data=[]model.Farmer} "Farmers retrieved"
// @Failure      401 {object} util.APIResponse "Not logged in"
// @Failure      403 {object} util.APIResponse "Vet shops only"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /farmers [get]
func ListFarmers(c *gin.Context) {
	s, ok := getSessionOrRespond(c)
	if !ok {
		return
	}
	st, ok := getStoreOrRespond(c)
	if !ok {
		return
	}

	farmers, err := st.ListFarmersByShop(c.Request.Context(), s.Shop.ShopName)
	if err != nil {
		respondStoreError(c, err, "Failed to retrieve farmers")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  translateMsg(c, "Farmers retrieved"),
		Data: farmers,
	})
}
