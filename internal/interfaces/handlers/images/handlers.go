package images

import (
	"errors"
	"io"
	"strconv"

	imgsvc "gearshare-backend/internal/application/images"
	"gearshare-backend/internal/domain"
	"gearshare-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// deletedAtLayout is the wire format for image deletion timestamps.
const deletedAtLayout = "2006 01 02 15:04:05"

type Handlers struct {
	Service *imgsvc.Service
}

// POST /listing/new_listing_image/listing_id=:listing_id — multipart "userfile",
// 201 {image_path, image_media_link}
func (h *Handlers) NewListingImage(c *fiber.Ctx) error {
	listingID, err := strconv.ParseInt(c.Params("listing_id"), 10, 64)
	if err != nil {
		return response.Raise(c, "Invalid listing_id", fiber.StatusBadRequest)
	}

	fileHeader, err := c.FormFile("userfile")
	if err != nil {
		return response.Raise(c, "userfile is required", fiber.StatusBadRequest)
	}
	file, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	path, link, err := h.Service.AttachImage(c.Context(), listingID, fileHeader.Filename, data)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			return response.Raise(c, "Listing does not exist!", fiber.StatusBadRequest)
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"image_path":       path,
		"image_media_link": link,
	})
}

// DELETE /listing/delete_listing_image/path=* — 200 {"picture_id deleted", date_deleted}
func (h *Handlers) DeleteListingImage(c *fiber.Ctx) error {
	path := c.Params("*")
	if path == "" {
		return response.Raise(c, "Invalid path", fiber.StatusBadRequest)
	}

	deleted, deletedAt, err := h.Service.DetachImage(c.Context(), path)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"picture_id deleted": deleted,
		"date_deleted":       deletedAt.Format(deletedAtLayout),
	})
}
