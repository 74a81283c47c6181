package api

import (
	"errors"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"propertycalc/server/internal/auth"
	"propertycalc/server/internal/calculator"
	"propertycalc/server/internal/credit"
	"propertycalc/server/internal/database"
	"propertycalc/server/internal/metrics"
	"propertycalc/server/internal/models"
)

// UserStore is the subset of the database the handlers need.
type UserStore interface {
	CreateUser(username, passwordHash string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	DeleteUser(username string) error
}

type Handler struct {
	users   UserStore
	logger  *logrus.Logger
	metrics *metrics.Metrics
	mapPath string
}

type CalculateRequest struct {
	Category string                 `json:"category" binding:"required"`
	Fields   map[string]interface{} `json:"fields"`
}

func NewHandler(users UserStore, logger *logrus.Logger, m *metrics.Metrics, mapPath string) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	if m == nil {
		m = metrics.New()
	}

	return &Handler{
		users:   users,
		logger:  logger,
		metrics: m,
		mapPath: mapPath,
	}
}

func (h *Handler) Home(c *gin.Context) {
	if sessionUser(c) != "" {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.HTML(http.StatusOK, "login.html", page("Log in"))
}

func (h *Handler) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", page("Log in"))
}

func (h *Handler) Login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	user, err := h.users.GetUserByUsername(username)
	if err != nil && !errors.Is(err, database.ErrUserNotFound) {
		h.logger.WithError(err).Error("Failed to look up user")
		c.HTML(http.StatusInternalServerError, "login.html", pageWithError("Log in", "Something went wrong, please try again"))
		return
	}

	if user == nil || !auth.CheckPassword(user.PasswordHash, password) {
		h.logger.WithField("username", username).Info("Failed login attempt")
		c.HTML(http.StatusUnauthorized, "login.html", pageWithError("Log in", "Invalid credentials"))
		return
	}

	session := sessions.Default(c)
	session.Set(sessionUserKey, user.Username)
	if err := session.Save(); err != nil {
		h.logger.WithError(err).Error("Failed to save session")
		c.HTML(http.StatusInternalServerError, "login.html", pageWithError("Log in", "Something went wrong, please try again"))
		return
	}

	h.logger.WithField("username", user.Username).Info("User logged in")
	c.Redirect(http.StatusFound, "/dashboard")
}

func (h *Handler) RegisterForm(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", page("Register"))
}

func (h *Handler) Register(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")
	confirm := c.PostForm("confirm-password")

	if err := auth.ValidateRegistration(username, password, confirm); err != nil {
		c.HTML(http.StatusBadRequest, "register.html", pageWithError("Register", validationMessage(err)))
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		h.logger.WithError(err).Error("Failed to hash password")
		c.HTML(http.StatusInternalServerError, "register.html", pageWithError("Register", "Something went wrong, please try again"))
		return
	}

	if _, err := h.users.CreateUser(username, hash); err != nil {
		if errors.Is(err, database.ErrUserExists) {
			c.HTML(http.StatusConflict, "register.html", pageWithError("Register", "Username already exists"))
			return
		}
		h.logger.WithError(err).Error("Failed to create user")
		c.HTML(http.StatusInternalServerError, "register.html", pageWithError("Register", "Something went wrong, please try again"))
		return
	}

	h.logger.WithField("username", username).Info("User registered")
	c.Redirect(http.StatusFound, "/login")
}

func (h *Handler) Logout(c *gin.Context) {
	clearSession(c)
	c.Redirect(http.StatusFound, "/login")
}

func (h *Handler) Dashboard(c *gin.Context) {
	data := page("Dashboard")
	data["Username"] = currentUser(c)
	data["Fields"] = calculatorFields()
	c.HTML(http.StatusOK, "dashboard.html", data)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	username := currentUser(c)

	err := h.users.DeleteUser(username)
	if errors.Is(err, database.ErrUserNotFound) {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	if err != nil {
		h.logger.WithError(err).WithField("username", username).Error("Failed to delete user")
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	clearSession(c)
	h.logger.WithField("username", username).Info("User deleted")
	c.Redirect(http.StatusFound, "/register")
}

// ShowMap serves the prebuilt map artifact verbatim.
func (h *Handler) ShowMap(c *gin.Context) {
	if _, err := os.Stat(h.mapPath); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			h.logger.WithError(err).Error("Failed to stat map artifact")
		}
		c.HTML(http.StatusNotFound, "map_missing.html", page("Map"))
		return
	}
	c.File(h.mapPath)
}

func (h *Handler) Calculate(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		c.HTML(http.StatusBadRequest, "result.html", pageWithError("Result", "Invalid form submission"))
		return
	}

	result, err := h.calculate(c.Request.PostForm.Get("category"), c.Request.PostForm)
	if err != nil {
		status, message := h.errorResponse(err)
		c.HTML(status, "result.html", pageWithError("Result", message))
		return
	}

	data := page("Result")
	data["Result"] = result
	c.HTML(http.StatusOK, "result.html", data)
}

func (h *Handler) CalculateJSON(c *gin.Context) {
	var req CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Failed to parse calculate request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	form, err := fieldsToForm(req.Fields)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": validationMessage(err)})
		return
	}

	result, err := h.calculate(req.Category, form)
	if err != nil {
		status, message := h.errorResponse(err)
		c.JSON(status, gin.H{"error": message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": req.Category, "result": result})
}

func (h *Handler) EvaluateCredit(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		c.HTML(http.StatusBadRequest, "credit.html", pageWithError("Credit check", "Invalid form submission"))
		return
	}

	in, err := credit.ParseForm(c.Request.PostForm)
	if err == nil {
		var result credit.Result
		result, err = h.evaluate(in)
		if err == nil {
			data := page("Credit check")
			data["Credit"] = result
			c.HTML(http.StatusOK, "credit.html", data)
			return
		}
	}

	status, message := h.errorResponse(err)
	c.HTML(status, "credit.html", pageWithError("Credit check", message))
}

func (h *Handler) EvaluateCreditJSON(c *gin.Context) {
	var in credit.Inputs
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.WithError(err).Error("Failed to parse credit request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result, err := h.evaluate(in)
	if err != nil {
		status, message := h.errorResponse(err)
		c.JSON(status, gin.H{"error": message})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) calculate(rawCategory string, form url.Values) (calculator.Result, error) {
	category, err := calculator.ParseCategory(rawCategory)
	if err != nil {
		h.metrics.ObserveCalculation("invalid", err)
		return nil, err
	}

	result, err := calculator.Calculate(category, form)
	h.metrics.ObserveCalculation(string(category), err)
	return result, err
}

func (h *Handler) evaluate(in credit.Inputs) (credit.Result, error) {
	result, err := credit.Evaluate(in)
	if err != nil {
		return result, err
	}
	h.metrics.ObserveCreditEvaluation(string(result.Tier), result.LoanApproved)
	return result, nil
}

// errorResponse maps a calculation error onto a status and a user-facing message.
func (h *Handler) errorResponse(err error) (int, string) {
	var vErr *models.ValidationError
	if errors.As(err, &vErr) {
		return http.StatusUnprocessableEntity, vErr.Error()
	}
	h.logger.WithError(err).Error("Calculation failed")
	return http.StatusInternalServerError, "Something went wrong, please try again"
}

func validationMessage(err error) string {
	var vErr *models.ValidationError
	if errors.As(err, &vErr) {
		return vErr.Message
	}
	return err.Error()
}

// fieldsToForm converts JSON field values into form values. Numbers and
// numeric strings are both accepted.
func fieldsToForm(fields map[string]interface{}) (url.Values, error) {
	form := url.Values{}
	for name, v := range fields {
		switch val := v.(type) {
		case string:
			form.Set(name, val)
		case float64:
			form.Set(name, strconv.FormatFloat(val, 'f', -1, 64))
		case nil:
		default:
			return nil, models.NewValidationError(name, "must be a number")
		}
	}
	return form, nil
}

func calculatorFields() []string {
	seen := make(map[string]bool)
	var fields []string
	for _, category := range calculator.Categories {
		for _, f := range calculator.Fields(category) {
			if !seen[f] {
				seen[f] = true
				fields = append(fields, f)
			}
		}
	}
	return fields
}

func page(title string) gin.H {
	return gin.H{"Title": title}
}

func pageWithError(title, message string) gin.H {
	return gin.H{"Title": title, "Error": message}
}
