package endpoint

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ariebrainware/biosecure-portal/middleware"
	"github.com/ariebrainware/biosecure-portal/model"
	"github.com/ariebrainware/biosecure-portal/session"
	"github.com/ariebrainware/biosecure-portal/store"
	"github.com/ariebrainware/biosecure-portal/util"
	"github.com/gin-gonic/gin"
)

type SignupShopRequest struct {
	ShopName  string `json:"shop_name" example:"Sri Murugan Vet Store"`
	OwnerName string `json:"owner_name" example:"Karthik"`
	Phone     string `json:"phone" example:"9876543210"`
	Address   string `json:"address" example:"12 Market Road"`
	Location  string `json:"location" example:"Salem"`
}

type SignupDoctorRequest struct {
	HospitalName string `json:"hospital_name" example:"Salem Veterinary Hospital"`
	DoctorName   string `json:"doctor_name" example:"Dr. Priya"`
	Phone        string `json:"phone" example:"9123400000"`
	Address      string `json:"address" example:"4 Hospital Street"`
	Location     string `json:"location" example:"Salem"`
}

// AccountResponse is returned by signup and login.
type AccountResponse struct {
	Role     model.Role  `json:"role" example:"Vet Shop"`
	Account  interface{} `json:"account"`
	Warnings []string    `json:"warnings,omitempty"`
}

// SignupShop godoc
// @Summary      Register a vet shop
// @Description  Register a vet shop by phone number and log the session in as that shop
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        request body SignupShopRequest true "Vet shop details"
// @Success      200 {object} util.APIResponse{data=AccountResponse} "Vet Shop registered successfully!"
// @Failure      400 {object} util.APIResponse "Invalid phone number or missing field"
// @Failure      409 {object} util.APIResponse "Phone number already registered"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /signup/shop [post]
func SignupShop(c *gin.Context) {
	var req SignupShopRequest
	if !bindJSONOrRespond(c, &req) {
		return
	}
	shop := &model.VetShop{
		ShopName:  util.NormalizeName(req.ShopName),
		OwnerName: util.NormalizeName(req.OwnerName),
		Phone:     strings.TrimSpace(req.Phone),
		Address:   strings.TrimSpace(req.Address),
		Location:  strings.TrimSpace(req.Location),
	}

	reg := registration{
		role:     model.RoleVetShop,
		phone:    shop.Phone,
		validate: shop.Validate,
		exists: func(ctx context.Context, st store.Store) error {
			_, err := st.FindShopByPhone(ctx, shop.Phone)
			return err
		},
		create: func(ctx context.Context, st store.Store) error { return st.CreateShop(ctx, shop) },
		login:  func(s *session.State) { s.LoginShop(shop) },
		done:   "Vet Shop registered successfully!",
		record: shop,
	}
	register(c, reg)
}

// SignupDoctor godoc
// @Summary      Register a vet doctor
// @Description  Register a vet doctor by phone number and log the session in as that doctor
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        request body SignupDoctorRequest true "Vet doctor details"
// @Success      200 {object} util.APIResponse{data=AccountResponse} "Vet Doctor registered successfully!"
// @Failure      400 {object} util.APIResponse "Invalid phone number or missing field"
// @Failure      409 {object} util.APIResponse "Phone number already registered"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /signup/doctor [post]
func SignupDoctor(c *gin.Context) {
	var req SignupDoctorRequest
	if !bindJSONOrRespond(c, &req) {
		return
	}
	doctor := &model.VetDoctor{
		HospitalName: util.NormalizeName(req.HospitalName),
		DoctorName:   util.NormalizeName(req.DoctorName),
		Phone:        strings.TrimSpace(req.Phone),
		Address:      strings.TrimSpace(req.Address),
		Location:     strings.TrimSpace(req.Location),
	}

	reg := registration{
		role:     model.RoleVetDoctor,
		phone:    doctor.Phone,
		validate: doctor.Validate,
		exists: func(ctx context.Context, st store.Store) error {
			_, err := st.FindDoctorByPhone(ctx, doctor.Phone)
			return err
		},
		create: func(ctx context.Context, st store.Store) error { return st.CreateDoctor(ctx, doctor) },
		login:  func(s *session.State) { s.LoginDoctor(doctor) },
		done:   "Vet Doctor registered successfully!",
		record: doctor,
	}
	register(c, reg)
}

// registration is the role specific part of a signup.
type registration struct {
	role     model.Role
	phone    string
	validate func() error
	exists   func(ctx context.Context, st store.Store) error
	create   func(ctx context.Context, st store.Store) error
	login    func(s *session.State)
	done     string
	record   interface{}
}

// register validates, rejects known phones, creates the identity account best-effort,
// writes the record and logs the session in.
func register(c *gin.Context, reg registration) {
	s, ok := getSessionOrRespond(c)
	if !ok {
		return
	}
	// the phone is checked first so its message wins over missing fields
	if err := model.ValidatePhone(reg.phone); err != nil {
		respondValidationError(c, err)
		return
	}
	if err := reg.validate(); err != nil {
		respondValidationError(c, err)
		return
	}
	st, ok := getStoreOrRespond(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	ci := clientInfoFrom(c)

	err := reg.exists(ctx, st)
	switch {
	case err == nil:
		respondStoreError(c, fmt.Errorf("%w: %s %s", store.ErrDuplicate, reg.role, reg.phone), "Registration failed")
		return
	case !errors.Is(err, store.ErrNotFound):
		respondStoreError(c, err, "Registration failed")
		return
	}

	var warnings []string
	if res := middleware.GetIdentity(c).CreateAccount(ctx, reg.phone, reg.phone); !res.OK {
		util.Logger.Warn().Err(res.Err).Str("role", string(reg.role)).Msg("identity account not created")
		util.LogIdentitySkipped(ctx, reg.phone, reg.role, ci, res.Err)
		warnings = append(warnings, translateMsg(c, msgIdentitySkipped))
	}

	if err := reg.create(ctx, st); err != nil {
		respondStoreError(c, err, "Registration failed")
		return
	}

	reg.login(s)
	util.LogRegistration(ctx, reg.phone, reg.role, ci)

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  translateMsg(c, reg.done),
		Data: AccountResponse{Role: reg.role, Account: reg.record, Warnings: warnings},
	})
}

type LoginRequest struct {
	Role  string `json:"role" example:"Vet Shop"`
	Phone string `json:"phone" example:"9876543210"`
}

// Login godoc
// @Summary      Log in by phone number
// @Description  Look up the account of the selected role by phone number and log the session in
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        request body LoginRequest true "Role and phone number"
// @Success      200 {object} util.APIResponse{data=AccountResponse} "Login successful!"
// @Failure      400 {object} util.APIResponse "Invalid phone number or role"
// @Failure      404 {object} util.APIResponse "User not found. Please Signup first."
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /login [post]
func Login(c *gin.Context) {
	s, ok := getSessionOrRespond(c)
	if !ok {
		return
	}
	var req LoginRequest
	if !bindJSONOrRespond(c, &req) {
		return
	}

	ctx := c.Request.Context()
	ci := clientInfoFrom(c)
	phone := strings.TrimSpace(req.Phone)

	role, err := model.ParseRole(req.Role)
	if err != nil {
		util.CallUserError(c, util.APIErrorParams{Msg: translateMsg(c, "Select Role"), Err: err})
		return
	}
	if err := model.ValidatePhone(phone); err != nil {
		util.LogLoginFailure(ctx, phone, role, ci, "invalid phone")
		respondValidationError(c, err)
		return
	}
	st, ok := getStoreOrRespond(c)
	if !ok {
		return
	}

	account, err := store.FindAccount(ctx, st, role, phone)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			util.LogLoginFailure(ctx, phone, role, ci, "user not found")
			respondStoreError(c, err, msgUserNotFound)
			return
		}
		util.LogLoginFailure(ctx, phone, role, ci, "store error")
		respondStoreError(c, err, "Login failed")
		return
	}

	gw := middleware.GetIdentity(c)
	if gw.Enabled() {
		if res := gw.VerifyAccount(ctx, phone, phone); !res.OK {
			util.Logger.Warn().Err(res.Err).Str("role", string(role)).Msg("identity account could not be verified")
		}
	}

	switch a := account.(type) {
	case *model.VetShop:
		s.LoginShop(a)
	case *model.VetDoctor:
		s.LoginDoctor(a)
	}
	util.LogLoginSuccess(ctx, phone, role, ci)

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  translateMsg(c, "Login successful!"),
		Data: AccountResponse{Role: role, Account: account},
	})
}

// Logout godoc
// @Summary      Log out
// @Description  Forget the logged in account and current farmer. Language and translations stay with the session.
// @Tags         Authentication
// @Produce      json
// @Security     SessionToken
// @Success      200 {object} util.APIResponse{data=SessionSummary} "Logged out"
// @Failure      401 {object} util.APIResponse "Not logged in"
// @Router       /logout [post]
func Logout(c *gin.Context) {
	s, ok := getSessionOrRespond(c)
	if !ok {
		return
	}
	util.LogLogout(c.Request.Context(), s.Phone(), s.Role, clientInfoFrom(c))
	s.Logout()

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  translateMsg(c, "Logged out successfully."),
		Data: summarize(s),
	})
}

// ProfileField is one labelled line of the profile screen.
type ProfileField struct {
	Label string `json:"label" example:"Shop Name"`
	Value string `json:"value" example:"Sri Murugan Vet Store"`
}

type ProfileResponse struct {
	Role    model.Role     `json:"role" example:"Vet Shop"`
	Account interface{}    `json:"account"`
	Details []ProfileField `json:"details"`
}

// Profile godoc
// @Summary      Profile details
// @Description  The logged in account with translated field labels
// @Tags         Authentication
// @Produce      json
// @Security     SessionToken
// @Success      200 {object} util.APIResponse{data=ProfileResponse} "Profile Details"
// @Failure      401 {object} util.APIResponse "Not logged in"
// @Router       /profile [get]
func Profile(c *gin.Context) {
	s, ok := getSessionOrRespond(c)
	if !ok {
		return
	}

	var fields [][2]string
	switch {
	case s.Shop != nil:
		fields = [][2]string{
			{"Shop Name", s.Shop.ShopName},
			{"Owner Name", s.Shop.OwnerName},
			{"Phone", s.Shop.Phone},
			{"Address", s.Shop.Address},
			{"Location", s.Shop.Location},
		}
	case s.Doctor != nil:
		fields = [][2]string{
			{"Hospital Name", s.Doctor.HospitalName},
			{"Doctor Name", s.Doctor.DoctorName},
			{"Phone", s.Doctor.Phone},
			{"Address", s.Doctor.Address},
			{"Location", s.Doctor.Location},
		}
	}
	details := make([]ProfileField, 0, len(fields))
	for _, f := range fields {
		details = append(details, ProfileField{Label: translateMsg(c, f[0]), Value: f[1]})
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  translateMsg(c, "Profile Details"),
		Data: ProfileResponse{Role: s.Role, Account: s.Account(), Details: details},
	})
}
