package v1

import (
	"net/http"
	"strconv"
	"time"

	"talent-pool-backend/internal/delivery/http/response"
	"talent-pool-backend/internal/domain"
	"talent-pool-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type CandidateHandler struct {
	candidateUC domain.CandidateUsecase
}

// NewCandidateHandler registers the candidate self-service routes. The group
// is expected to be guarded by the auth gate and role=candidate.
func NewCandidateHandler(r *gin.RouterGroup, candidateUC domain.CandidateUsecase) {
	handler := &CandidateHandler{candidateUC: candidateUC}

	r.POST("/candidates", handler.CreateProfile)

	profile := r.Group("/candidates")
	{
		profile.GET("/profile", handler.GetProfile)
		profile.PUT("/profile", handler.UpdateProfile)
		profile.GET("/skills", handler.GetSkills)
		profile.POST("/skills", handler.AddSkill)
		profile.DELETE("/skills/:id", handler.RemoveSkill)
		profile.GET("/education", handler.GetEducations)
		profile.POST("/education", handler.AddEducation)
		profile.DELETE("/education/:id", handler.RemoveEducation)
	}
}

type ProfileRequest struct {
	BirthDate    string `json:"birth_date"`
	Phone        string `json:"phone"`
	ZipCode      string `json:"zip_code"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

func (r *ProfileRequest) toInput() (*domain.ProfileInput, error) {
	input := &domain.ProfileInput{
		Phone:        r.Phone,
		ZipCode:      r.ZipCode,
		Street:       r.Street,
		Number:       r.Number,
		Complement:   r.Complement,
		Neighborhood: r.Neighborhood,
		City:         r.City,
		State:        r.State,
	}
	if r.BirthDate != "" {
		parsed, err := parseDate(r.BirthDate)
		if err != nil {
			return nil, apperror.BadRequest("birth_date must be YYYY-MM-DD")
		}
		input.BirthDate = &parsed
	}
	return input, nil
}

// parseDate accepts the frontend's YYYY-MM-DD form with an RFC3339 fallback.
func parseDate(value string) (time.Time, error) {
	if parsed, err := time.Parse("2006-01-02", value); err == nil {
		return parsed, nil
	}
	return time.Parse(time.RFC3339, value)
}

// CreateProfile godoc
// @Summary      Create candidate profile
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Success      201  {object}  response.Response{data=domain.Candidate}
// @Failure      409  {object}  response.Response
// @Router       /candidates [post]
// @Security     BearerAuth
func (h *CandidateHandler) CreateProfile(c *gin.Context) {
	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	input, err := req.toInput()
	if err != nil {
		c.Error(err)
		return
	}

	candidate, err := h.candidateUC.CreateProfile(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Profile created successfully", candidate)
}

// GetProfile godoc
// @Summary      Get candidate profile
// @Description  Get the profile of the currently logged-in candidate
// @Tags         candidates
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.Candidate}
// @Failure      404  {object}  response.Response
// @Router       /candidates/profile [get]
// @Security     BearerAuth
func (h *CandidateHandler) GetProfile(c *gin.Context) {
	candidate, err := h.candidateUC.GetProfile(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Candidate profile", candidate)
}

// UpdateProfile godoc
// @Summary      Update candidate profile
// @Description  Partial update; omitted fields keep their stored values.
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.Candidate}
// @Router       /candidates/profile [put]
// @Security     BearerAuth
func (h *CandidateHandler) UpdateProfile(c *gin.Context) {
	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	input, err := req.toInput()
	if err != nil {
		c.Error(err)
		return
	}

	candidate, err := h.candidateUC.UpdateProfile(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated successfully", candidate)
}

func (h *CandidateHandler) GetSkills(c *gin.Context) {
	skills, err := h.candidateUC.GetSkills(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Candidate skills", skills)
}

type AddSkillRequest struct {
	SkillID int64 `json:"skill_id" binding:"required"`
}

func (h *CandidateHandler) AddSkill(c *gin.Context) {
	var req AddSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	skill, err := h.candidateUC.AddSkill(c.Request.Context(), req.SkillID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Skill added successfully", skill)
}

func (h *CandidateHandler) RemoveSkill(c *gin.Context) {
	skillID, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.candidateUC.RemoveSkill(c.Request.Context(), skillID); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Skill removed successfully", nil)
}

func (h *CandidateHandler) GetEducations(c *gin.Context) {
	educations, err := h.candidateUC.GetEducations(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Candidate educations", educations)
}

type EducationRequest struct {
	CourseName      string `json:"course_name" binding:"required"`
	InstitutionName string `json:"institution_name" binding:"required"`
	CompletionDate  string `json:"completion_date" binding:"required"`
}

func (h *CandidateHandler) AddEducation(c *gin.Context) {
	var req EducationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	completion, err := parseDate(req.CompletionDate)
	if err != nil {
		c.Error(apperror.BadRequest("completion_date must be YYYY-MM-DD"))
		return
	}

	education, err := h.candidateUC.AddEducation(c.Request.Context(), &domain.EducationInput{
		CourseName:      req.CourseName,
		InstitutionName: req.InstitutionName,
		CompletionDate:  &completion,
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Education added successfully", education)
}

func (h *CandidateHandler) RemoveEducation(c *gin.Context) {
	educationID, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.candidateUC.RemoveEducation(c.Request.Context(), educationID); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Education removed successfully", nil)
}

// pathID parses a numeric path parameter.
func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.BadRequest("Invalid " + name + " parameter")
	}
	return id, nil
}
