package handlers

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/socialgit/socialgit-api/internal/service"
	"github.com/socialgit/socialgit-api/internal/transfer"
)

type PostHandler struct {
	s service.PostService
}

func NewPostHandler(service service.PostService) *PostHandler {
	return &PostHandler{s: service}
}

// formFile returns the optional media file from a multipart form. A
// request without a form or without the file field is fine.
func formFile(c *fiber.Ctx) *multipart.FileHeader {
	file, err := c.FormFile("file")
	if err != nil {
		return nil
	}
	return file
}

func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
	userID := GetUserID(c)
	clientID := c.QueryInt("client_id", 0)

	pc := transfer.PostCreation{
		Content:      c.FormValue("content"),
		Caption:      c.FormValue("caption"),
		ScheduleDate: c.FormValue("schedule_date"),
	}

	postID, err := h.s.Create(c.Context(), userID, int64(clientID), &pc, formFile(c))
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":      postID,
		"message": "Post created",
	})
}

func (h *PostHandler) EditPost(c *fiber.Ctx) error {
	userID := GetUserID(c)
	postID := c.Params("id")

	pe := transfer.PostEdit{
		Content:      c.FormValue("content"),
		Caption:      c.FormValue("caption"),
		ScheduleDate: c.FormValue("schedule_date"),
	}

	if err := h.s.Edit(c.Context(), userID, postID, &pe, formFile(c)); err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Revision added successfully",
	})
}

func (h *PostHandler) ListPosts(c *fiber.Ctx) error {
	userID := GetUserID(c)
	clientID := c.QueryInt("client_id", 0)

	posts, err := h.s.ListByClient(c.Context(), userID, int64(clientID))
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(posts)
}

func (h *PostHandler) PostInfo(c *fiber.Ctx) error {
	postID := c.Params("id")

	post, err := h.s.Info(c.Context(), postID)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(post)
}

func (h *PostHandler) ListRevisions(c *fiber.Ctx) error {
	postID := c.Params("id")

	revisions, err := h.s.Revisions(c.Context(), postID)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(revisions)
}

func (h *PostHandler) RemovePost(c *fiber.Ctx) error {
	userID := GetUserID(c)
	postID := c.Params("id")

	if err := h.s.Remove(c.Context(), userID, postID); err != nil {
		return fail(c, err)
	}

	return c.SendStatus(fiber.StatusOK)
}
