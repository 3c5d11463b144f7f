package controller

import (
	"errors"

	"omr_backend/internal/service"
	"omr_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SubjectController struct {
	Service *service.SubjectService
}

func NewSubjectController(svc *service.SubjectService) *SubjectController {
	return &SubjectController{Service: svc}
}

// @Summary 获取科目列表
// @Tags 科目
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/subjects [get]
func (c *SubjectController) ListSubjects(ctx *gin.Context) {
	subjects, err := c.Service.ListSubjects()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, subjects)
}

// @Summary 创建科目
// @Tags 科目
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateSubjectRequest true "科目信息"
// @Success 201 {object} util.Response
// @Router /api/subjects [post]
func (c *SubjectController) CreateSubject(ctx *gin.Context) {
	var req service.CreateSubjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	subject, err := c.Service.CreateSubject(req)
	if err != nil {
		if errors.Is(err, util.ErrSubjectExists) {
			util.Conflict(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, subject)
}

// @Summary 删除科目
// @Description 删除科目，其下章节保留但不再归属任何科目
// @Tags 科目
// @Produce json
// @Security BearerAuth
// @Param id path int true "科目ID"
// @Success 200 {object} util.Response
// @Router /api/subjects/{id} [delete]
func (c *SubjectController) DeleteSubject(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid id")
		return
	}

	if err := c.Service.DeleteSubject(id); err != nil {
		if errors.Is(err, util.ErrSubjectNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
