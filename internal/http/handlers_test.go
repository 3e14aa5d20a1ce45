package http_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/tazhibayda/bookstore-api/internal/domain"
)

func Test_User_Validation_RejectedBeforePersistence(t *testing.T) {
	env := newTestEnv(t)
	defer env.Close()

	// age outside [18,65]
	w := env.do("POST", "/users",
		`{"firstName":"Jo","lastName":"Young","email":"jo@example.com","age":17}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("underage create code=%d body=%s", w.Code, w.Body.String())
	}

	// missing required field
	w = env.do("POST", "/users", `{"firstName":"NoMail","lastName":"X","age":30}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing email code=%d body=%s", w.Code, w.Body.String())
	}

	// nothing was persisted
	w = env.do("GET", "/users", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list code=%d", w.Code)
	}
	var users []domain.User
	if err := json.Unmarshal(w.Body.Bytes(), &users); err != nil {
		t.Fatalf("list parse: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("expected empty user list, got %d", len(users))
	}
}

func Test_User_CRUD_RoundTrip(t *testing.T) {
	env := newTestEnv(t)
	defer env.Close()

	w := env.do("POST", "/users",
		`{"firstName":"John","lastName":"Doe","email":"john@example.com","age":33,"professions":["writer"]}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create code=%d body=%s", w.Code, w.Body.String())
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil || created.ID == "" {
		t.Fatalf("create resp parse: %v body=%s", err, w.Body.String())
	}

	// round-trip
	w = env.do("GET", "/users/"+created.ID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("get code=%d body=%s", w.Code, w.Body.String())
	}
	var u domain.User
	if err := json.Unmarshal(w.Body.Bytes(), &u); err != nil {
		t.Fatalf("get parse: %v", err)
	}
	if u.FirstName != "John" || u.LastName != "Doe" || u.Email != "john@example.com" || u.Age != 33 {
		t.Fatalf("round-trip mismatch: %+v", u)
	}

	// unknown id
	w = env.do("GET", "/users/ffffffffffffffffffffffff", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown id code=%d", w.Code)
	}

	// merge update
	w = env.do("PUT", "/users/"+created.ID, `{"age":34}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update code=%d body=%s", w.Code, w.Body.String())
	}
	if err := json.Unmarshal(w.Body.Bytes(), &u); err != nil {
		t.Fatal(err)
	}
	if u.Age != 34 || u.FirstName != "John" {
		t.Fatalf("merge update mismatch: %+v", u)
	}

	// delete, then gone
	w = env.do("DELETE", "/users/"+created.ID, "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete code=%d body=%s", w.Code, w.Body.String())
	}
	w = env.do("GET", "/users/"+created.ID, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("get after delete code=%d", w.Code)
	}
	w = env.do("DELETE", "/users/"+created.ID, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("double delete code=%d", w.Code)
	}
}

func Test_PurchaseHistory(t *testing.T) {
	env := newTestEnv(t)
	defer env.Close()

	w := env.do("POST", "/users",
		`{"firstName":"Ann","lastName":"Reader","email":"ann@example.com","age":40}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create user: %d %s", w.Code, w.Body.String())
	}
	var created struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &created)

	w = env.do("POST", "/books",
		`{"asin":"B00X1","title":"Dune","img":"http://img/dune.jpg","price":9.99,"category":"fantasy"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create book: %d %s", w.Code, w.Body.String())
	}
	var book struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &book)

	// non-existent book leaves history unchanged
	w = env.do("POST", "/users/"+created.ID+"/purchaseHistory",
		`{"bookId":"ffffffffffffffffffffffff"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing book: %d %s", w.Code, w.Body.String())
	}
	w = env.do("GET", "/users/"+created.ID+"/purchaseHistory", "")
	var history []domain.PurchaseEntry
	_ = json.Unmarshal(w.Body.Bytes(), &history)
	if len(history) != 0 {
		t.Fatalf("history should be empty, got %d", len(history))
	}

	// append: snapshot of the book plus purchase timestamp
	w = env.do("POST", "/users/"+created.ID+"/purchaseHistory",
		`{"bookId":"`+book.ID+`"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("append: %d %s", w.Code, w.Body.String())
	}
	var u domain.User
	_ = json.Unmarshal(w.Body.Bytes(), &u)
	if len(u.PurchaseHistory) != 1 {
		t.Fatalf("history len=%d", len(u.PurchaseHistory))
	}
	entry := u.PurchaseHistory[0]
	if entry.Asin != "B00X1" || entry.Title != "Dune" || entry.Price != 9.99 ||
		entry.Category != "fantasy" || entry.PurchaseDate.IsZero() {
		t.Fatalf("snapshot mismatch: %+v", entry)
	}
	if entry.ID.Hex() == book.ID {
		t.Fatal("entry must carry its own id, not the book's")
	}

	pid := entry.ID.Hex()

	// get-one
	w = env.do("GET", "/users/"+created.ID+"/purchaseHistory/"+pid, "")
	if w.Code != http.StatusOK {
		t.Fatalf("get entry: %d %s", w.Code, w.Body.String())
	}
	w = env.do("GET", "/users/"+created.ID+"/purchaseHistory/ffffffffffffffffffffffff", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("get unknown entry: %d", w.Code)
	}

	// update-one merges fields
	w = env.do("PUT", "/users/"+created.ID+"/purchaseHistory/"+pid, `{"price":4.99}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update entry: %d %s", w.Code, w.Body.String())
	}
	_ = json.Unmarshal(w.Body.Bytes(), &u)
	if u.PurchaseHistory[0].Price != 4.99 || u.PurchaseHistory[0].Title != "Dune" {
		t.Fatalf("entry merge mismatch: %+v", u.PurchaseHistory[0])
	}

	// delete-one pulls it out
	w = env.do("DELETE", "/users/"+created.ID+"/purchaseHistory/"+pid, "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete entry: %d %s", w.Code, w.Body.String())
	}
	_ = json.Unmarshal(w.Body.Bytes(), &u)
	if len(u.PurchaseHistory) != 0 {
		t.Fatalf("entry not removed: %+v", u.PurchaseHistory)
	}
}
