package v1

import (
	"net/http"

	"talent-pool-backend/internal/delivery/http/response"
	"talent-pool-backend/internal/domain"
	"talent-pool-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type RecruiterHandler struct {
	recruiterUC domain.RecruiterUsecase
}

// NewRecruiterHandler registers the manager-facing routes. The group is
// expected to be guarded by the auth gate and role=manager.
func NewRecruiterHandler(r *gin.RouterGroup, recruiterUC domain.RecruiterUsecase) {
	handler := &RecruiterHandler{recruiterUC: recruiterUC}

	candidates := r.Group("/candidates")
	{
		candidates.GET("", handler.ListCandidates)
		candidates.GET("/:id", handler.GetCandidate)
		candidates.POST("/:id/select", handler.SelectForInterview)
		candidates.POST("/:id/skills", handler.AddCandidateSkill)
		candidates.DELETE("/:id/skills/:skillId", handler.RemoveCandidateSkill)
	}
}

// ListCandidates godoc
// @Summary      List candidates
// @Description  List all candidate profiles, optionally filtered by name and skill (case-insensitive substring match).
// @Tags         recruiters
// @Produce      json
// @Param        name   query  string  false  "Filter by candidate name"
// @Param        skill  query  string  false  "Filter by skill name"
// @Success      200  {object}  response.Response{data=[]domain.Candidate}
// @Router       /candidates [get]
// @Security     BearerAuth
func (h *RecruiterHandler) ListCandidates(c *gin.Context) {
	filter := domain.CandidateFilter{
		Name:  c.Query("name"),
		Skill: c.Query("skill"),
	}

	candidates, err := h.recruiterUC.ListCandidates(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Candidates retrieved successfully", candidates)
}

// GetCandidate godoc
// @Summary      Get candidate details
// @Tags         recruiters
// @Produce      json
// @Param        id  path  int  true  "Candidate ID"
// @Success      200  {object}  response.Response{data=domain.Candidate}
// @Failure      404  {object}  response.Response
// @Router       /candidates/{id} [get]
// @Security     BearerAuth
func (h *RecruiterHandler) GetCandidate(c *gin.Context) {
	candidateID, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	candidate, err := h.recruiterUC.GetCandidate(c.Request.Context(), candidateID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Candidate retrieved successfully", candidate)
}

// SelectForInterview godoc
// @Summary      Select candidate for interview
// @Description  Schedule an interview three business days out at 14:00 and notify the candidate by email. A candidate can only be selected once.
// @Tags         recruiters
// @Produce      json
// @Param        id  path  int  true  "Candidate ID"
// @Success      200  {object}  response.Response{data=domain.Candidate}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidates/{id}/select [post]
// @Security     BearerAuth
func (h *RecruiterHandler) SelectForInterview(c *gin.Context) {
	candidateID, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	candidate, err := h.recruiterUC.SelectForInterview(c.Request.Context(), candidateID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Candidate selected for interview", candidate)
}

func (h *RecruiterHandler) AddCandidateSkill(c *gin.Context) {
	candidateID, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	var req AddSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	skill, err := h.recruiterUC.AddCandidateSkill(c.Request.Context(), candidateID, req.SkillID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Skill added successfully", skill)
}

func (h *RecruiterHandler) RemoveCandidateSkill(c *gin.Context) {
	candidateID, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	skillID, err := pathID(c, "skillId")
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.recruiterUC.RemoveCandidateSkill(c.Request.Context(), candidateID, skillID); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Skill removed successfully", nil)
}
