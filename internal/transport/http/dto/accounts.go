package dto

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/baechuer/account-gateway/internal/domain"
)

// AccountReq is the body of insert, update and delete. Delete reads only ID.
type AccountReq struct {
	ID       int64  `json:"Id"`
	IDNumber string `json:"IdNumber"`
	FullName string `json:"FullName"`
	Username string `json:"Username"`
	Password string `json:"Password"`
	Section  string `json:"Section"`
	Role     string `json:"Role"`
}

type CountResp struct {
	Count int64 `json:"count"`
}

func (r AccountReq) Input() domain.AccountInput {
	return domain.AccountInput{
		IDNumber: r.IDNumber,
		FullName: r.FullName,
		Username: r.Username,
		Password: r.Password,
		Section:  r.Section,
		Role:     r.Role,
	}
}

// AccountReqFromForm reads the same field names from urlencoded form data. A
// non-numeric Id is left as 0 for the store to reject.
func AccountReqFromForm(form url.Values) AccountReq {
	id, _ := strconv.ParseInt(strings.TrimSpace(form.Get("Id")), 10, 64)
	return AccountReq{
		ID:       id,
		IDNumber: form.Get("IdNumber"),
		FullName: form.Get("FullName"),
		Username: form.Get("Username"),
		Password: form.Get("Password"),
		Section:  form.Get("Section"),
		Role:     form.Get("Role"),
	}
}
