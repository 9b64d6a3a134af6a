package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// FieldError describes a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// OK writes a 200 response with the given payload.
func OK(ctx *gin.Context, payload interface{}) {
	ctx.JSON(http.StatusOK, payload)
}

// Created writes a 201 response with the given payload.
func Created(ctx *gin.Context, payload interface{}) {
	ctx.JSON(http.StatusCreated, payload)
}

// Error writes an error response in the API's uniform { "error": ... } shape.
func Error(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{"error": message})
}

// FieldErrors writes a 400 response carrying per-field validation errors.
func FieldErrors(ctx *gin.Context, errs []FieldError) {
	ctx.JSON(http.StatusBadRequest, gin.H{"error": errs})
}
