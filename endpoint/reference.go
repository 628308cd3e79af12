package endpoint

import (
	"github.com/ariebrainware/biosecure-portal/config"
	"github.com/ariebrainware/biosecure-portal/model"
	"github.com/ariebrainware/biosecure-portal/util"
	"github.com/gin-gonic/gin"
)

type HomeResponse struct {
	AppName   string           `json:"app_name" example:"Digital Farm Management Portal"`
	Roles     []model.Role     `json:"roles"`
	Languages []model.Language `json:"languages"`
}

// Home godoc
// @Summary      Welcome screen
// @Tags         Reference
// @Produce      json
// @Success      200 {object} util.APIResponse{data=HomeResponse} "Welcome message"
// @Router       / [get]
func Home(c *gin.Context) {
	cfg := config.LoadConfig()
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: translateMsg(c, "Welcome to the Biosecurity Portal for Pig & Poultry Farms."),
		Data: HomeResponse{
			AppName:   translateMsg(c, cfg.AppName),
			Roles:     model.Roles,
			Languages: model.Languages,
		},
	})
}

// ListDistricts godoc
// @Summary      List districts
// @Description  Districts offered when browsing vet shops and vet doctors
// @Tags         Reference
// @Produce      json
// @Success      200 {object} util.APIResponse{data=[]string} "Districts retrieved"
// @Router       /districts [get]
func ListDistricts(c *gin.Context) {
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  translateMsg(c, "Select District"),
		Data: model.Districts,
	})
}

// ListSpecies godoc
// @Summary      List species
// @Description  Species accepted by the disease prediction tool
// @Tags         Reference
// @Produce      json
// @Success      200 {object} util.APIResponse{data=[]string} "Species retrieved"
// @Router       /species [get]
func ListSpecies(c *gin.Context) {
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  translateMsg(c, "Select Species"),
		Data: model.Species,
	})
}
