package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// actionResponse is the envelope of every mutating endpoint.
type actionResponse struct {
	ActionResult bool   `json:"actionResult"`
	Result       any    `json:"result,omitempty"`
	Error        string `json:"error,omitempty"`
}

func respondAction(c *gin.Context, result any) {
	c.JSON(http.StatusOK, actionResponse{ActionResult: true, Result: result})
}

// respondNoOp reports a mutation that matched nothing. It is not an error.
func respondNoOp(c *gin.Context, reason string) {
	c.JSON(http.StatusOK, actionResponse{Error: reason})
}

func respondActionError(c *gin.Context, status int, msg string) {
	c.JSON(status, actionResponse{Error: msg})
}

func respondError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

// internalError logs err and hides it from the client.
func internalError(c *gin.Context, op string, err error) {
	log.Printf("%s: %v", op, err)
	respondError(c, http.StatusInternalServerError, "internal server error")
}

func internalActionError(c *gin.Context, op string, err error) {
	internalActionErrorWithMessage(c, op, err, "internal server error")
}

// internalActionErrorWithMessage logs err and reports only msg, e.g. the failed step.
func internalActionErrorWithMessage(c *gin.Context, op string, err error, msg string) {
	log.Printf("%s: %v", op, err)
	respondActionError(c, http.StatusInternalServerError, msg)
}

// bindActionJSON binds the request body and answers the envelope on failure:
// 413 past the body cap, 400 otherwise.
func bindActionJSON(c *gin.Context, obj any) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		respondActionError(c, http.StatusRequestEntityTooLarge, "request body too large")
		return false
	}
	respondActionError(c, http.StatusBadRequest, err.Error())
	return false
}

// queryID reads a positive integer query parameter.
func queryID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Query(name))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
