package endpoint

import (
	"github.com/ariebrainware/biosecure-portal/util"
	"github.com/gin-gonic/gin"
)

// ListDoctors godoc
// @Summary      Browse vet doctors by district
// @Tags         Browse
// @Produce      json
// @Security     SessionToken
// @Param        district query string true "District" Enums(Erode, Salem, Namakkal, Coimbatore, Madurai, Tirupur)
// @Success      200 {object} util.APIResponse{data=[]model.VetDoctor} "Vet doctors retrieved"
// @Failure      400 {object} util.APIResponse "Unknown district"
// @Failure      401 {object} util.APIResponse "Not logged in"
// @Failure      403 {object} util.APIResponse "Vet shops only"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /doctors [get]
func ListDoctors(c *gin.Context) {
	district, ok := requireDistrict(c)
	if !ok {
		return
	}
	st, ok := getStoreOrRespond(c)
	if !ok {
		return
	}

	doctors, err := st.ListDoctorsByDistrict(c.Request.Context(), district)
	if err != nil {
		respondStoreError(c, err, "Failed to retrieve vet doctors")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  translateMsg(c, "📍 Browse Vet Doctors by District"),
		Data: doctors,
	})
}

// ListShops godoc
// @Summary      Browse vet shops by district
// @Tags         Browse
// @Produce      json
// @Security     SessionToken
// @Param        district query string true "District" Enums(Erode, Salem, Namakkal, Coimbatore, Madurai, Tirupur)
// @Success      200 {object} util.APIResponse{data=[]model.VetShop} "Vet shops retrieved"
// @Failure      400 {object} util.APIResponse "Unknown district"
// @Failure      401 {object} util.APIResponse "Not logged in"
// @Failure      403 {object} util.APIResponse "Vet doctors only"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /shops [get]
func ListShops(c *gin.Context) {
	district, ok := requireDistrict(c)
	if !ok {
		return
	}
	st, ok := getStoreOrRespond(c)
	if !ok {
		return
	}

	shops, err := st.ListShopsByDistrict(c.Request.Context(), district)
	if err != nil {
		respondStoreError(c, err, "Failed to retrieve vet shops")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  translateMsg(c, "📍 Browse Vet Shops by District"),
		Data: shops,
	})
}

// ListQueries godoc
// @Summary      Disease queries in the doctor's district
// @Description  Disease queries recorded by vet shops at the logged in doctor's location, newest first
// @Tags         Browse
// @Produce      json
// @Security     SessionToken
// @Success      200 {object} util.APIResponse{data=[]model.DiseaseQuery} "Disease queries retrieved"
// @Failure      401 {object} util.APIResponse "Not logged in"
// @Failure      403 {object} util.APIResponse "Vet doctors only"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /queries [get]
func ListQueries(c *gin.Context) {
	s, ok := getSessionOrRespond(c)
	if !ok {
		return
	}
	st, ok := getStoreOrRespond(c)
	if !ok {
		return
	}

	queries, err := st.ListQueriesByLocation(c.Request.Context(), s.Location())
	if err != nil {
		respondStoreError(c, err, "Failed to retrieve disease queries")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  translateMsg(c, "📊 Disease Queries from Vet Shops in Your District"),
		Data: queries,
	})
}
