package endpoint

import (
	"fmt"

	"github.com/ariebrainware/biosecure-portal/model"
	"github.com/ariebrainware/biosecure-portal/util"
	"github.com/gin-gonic/gin"
)

// DashboardResponse holds whatever the role's dashboard shows. Farmers and CurrentFarmer are
// vet shop only, Queries is vet doctor only.
type DashboardResponse struct {
	Title         string                `json:"title" example:"Vet Shop Dashboard"`
	LoggedInAs    string                `json:"logged_in_as" example:"Logged in as Vet Shop"`
	Role          model.Role            `json:"role" example:"Vet Shop"`
	Location      string                `json:"location" example:"Salem"`
	Species       []string              `json:"species"`
	Districts     []string              `json:"districts"`
	CurrentFarmer *model.FarmerSnapshot `json:"current_farmer,omitempty"`
	Farmers       []model.Farmer        `json:"farmers,omitempty"`
	Queries       []model.DiseaseQuery  `json:"queries,omitempty"`
}

// Dashboard godoc
// @Summary      Role dashboard
// @Description  Vet shops get their farmers and current farmer; vet doctors get the disease queries of their district
// @Tags         Dashboard
// @Produce      json
// @Security     SessionToken
// @Success      200 {object} util.APIResponse{data=DashboardResponse} "Dashboard"
// @Failure      401 {object} util.APIResponse "Not logged in"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /dashboard [get]
func Dashboard(c *gin.Context) {
	s, ok := getSessionOrRespond(c)
	if !ok {
		return
	}
	st, ok := getStoreOrRespond(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	resp := DashboardResponse{
		Role:       s.Role,
		LoggedInAs: fmt.Sprintf("%s %s", translateMsg(c, "Logged in as"), translateMsg(c, string(s.Role))),
		Location:   s.Location(),
		Species:    model.Species,
		Districts:  model.Districts,
	}

	switch s.Role {
	case model.RoleVetShop:
		resp.Title = translateMsg(c, "Vet Shop Dashboard")
		resp.CurrentFarmer = s.CurrentFarmer
		farmers, err := st.ListFarmersByShop(ctx, s.Shop.ShopName)
		if err != nil {
			respondStoreError(c, err, "Failed to retrieve farmers")
			return
		}
		resp.Farmers = farmers
	case model.RoleVetDoctor:
		resp.Title = translateMsg(c, "Vet Doctor Dashboard")
		queries, err := st.ListQueriesByLocation(ctx, s.Location())
		if err != nil {
			respondStoreError(c, err, "Failed to retrieve disease queries")
			return
		}
		resp.Queries = queries
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  resp.Title,
		Data: resp,
	})
}
