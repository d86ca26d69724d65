package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// UploadFile 接收 multipart 表单中的 file 字段，目前只允许 PDF 简历
func (h *Handler) UploadFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.config.Upload.MaxFileSize)

	if err := r.ParseMultipartForm(h.config.Upload.MaxFileSize); err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "文件过大或表单格式错误")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "缺少 file 字段")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".pdf" {
		h.errorResponse(w, r, http.StatusBadRequest, "只支持上传 PDF 文件")
		return
	}

	filename := fmt.Sprintf("%s%s", uuid.NewString(), ext)

	url, err := h.storage.Save(filename, file)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{
		"url":      url,
		"filename": filename,
	})
}
