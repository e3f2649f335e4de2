// internal/api/api_integration_test.go
package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app "gigpay/internal"
	"gigpay/internal/domain"
)

// testApp is the global application instance for testing.
var testApp *app.Application

// testServer is the httptest server.
var testServer *httptest.Server

// TestMain is the entry point for the suite, executed once before all tests.
func TestMain(m *testing.M) {
	// 1. Set up environment variables (DB_NAME points to the test database).
	// In a real CI/CD environment, these variables would be provided by the CI system.
	setupEnvVars()

	// 2. Initialize the application. Without a reachable Postgres the suite
	// cannot run, so it is skipped rather than failed.
	testApp = app.NewApplication()
	if err := testApp.Initialize(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Skipping integration tests, failed to initialize application: %v\n", err)
		os.Exit(0)
	}

	// 3. Start an httptest server to exercise the HTTP handling layer.
	testServer = httptest.NewServer(testApp.HTTPHandler)
	defer testServer.Close()

	// 4. Run all tests.
	code := m.Run()

	// 5. Shut down application resources.
	if err := testApp.Shutdown(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to shutdown test application: %v\n", err)
		os.Exit(1)
	}

	os.Exit(code)
}

func setupEnvVars() {
	if os.Getenv("SERVER_PORT") == "" {
		os.Setenv("SERVER_PORT", "8080")
	}
	if os.Getenv("DB_HOST") == "" {
		os.Setenv("DB_HOST", "localhost")
	}
	if os.Getenv("DB_PORT") == "" {
		os.Setenv("DB_PORT", "5432")
	}
	if os.Getenv("DB_USER") == "" {
		os.Setenv("DB_USER", "user")
	}
	if os.Getenv("DB_PASSWORD") == "" {
		os.Setenv("DB_PASSWORD", "password")
	}
	if os.Getenv("DB_NAME") == "" {
		os.Setenv("DB_NAME", "gigpaydb_test")
	}
	if os.Getenv("DB_SSLMODE") == "" {
		os.Setenv("DB_SSLMODE", "disable")
	}
}

// clearDatabase truncates all tables so each test starts from a clean state.
func clearDatabase(t *testing.T) {
	tables := []string{"jobs", "contracts", "profiles"}
	for _, table := range tables {
		_, err := testApp.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE;", table))
		require.NoError(t, err, "Failed to truncate table %s", table)
	}
}

func createTestProfile(t *testing.T, firstName string, role domain.Role, balance decimal.Decimal) *domain.Profile {
	profile := domain.NewProfile(firstName, "Tester", "engineer", role)
	profile.Balance = balance
	err := testApp.ProfileRepository.CreateProfile(context.Background(), testApp.DB, profile)
	require.NoError(t, err)
	return profile
}

func createTestContract(t *testing.T, clientID, contractorID int64, status domain.ContractStatus) *domain.Contract {
	now := time.Now().UTC()
	contract := &domain.Contract{
		ClientID:     clientID,
		ContractorID: contractorID,
		Terms:        "standard terms",
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err := testApp.ContractRepository.CreateContract(context.Background(), testApp.DB, contract)
	require.NoError(t, err)
	return contract
}

func createTestJob(t *testing.T, contractID int64, price decimal.Decimal, paid bool, paymentDate *time.Time) *domain.Job {
	now := time.Now().UTC()
	job := &domain.Job{
		ContractID:  contractID,
		Description: "work",
		Price:       price,
		Paid:        paid,
		PaymentDate: paymentDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := testApp.JobRepository.CreateJob(context.Background(), testApp.DB, job)
	require.NoError(t, err)
	return job
}

// makeRequest sends an HTTP request to the test server as the given profile.
// A zero profileID leaves the profile_id header unset.
func makeRequest(t *testing.T, method, path string, profileID int64, body io.Reader) (*http.Response, string) {
	req, err := http.NewRequest(method, testServer.URL+path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if profileID != 0 {
		req.Header.Set("profile_id", fmt.Sprintf("%d", profileID))
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(respBody)
}

func profileBalance(t *testing.T, profileID int64) decimal.Decimal {
	profile, err := testApp.ProfileRepository.GetProfileByID(context.Background(), testApp.DB, profileID)
	require.NoError(t, err)
	return profile.Balance
}

// TestPayJobIntegration tests the job payment endpoint.
func TestPayJobIntegration(t *testing.T) {
	clearDatabase(t)
	client := createTestProfile(t, "Paying", domain.RoleClient, decimal.NewFromFloat(100.00))
	contractor := createTestProfile(t, "Working", domain.RoleContractor, decimal.NewFromFloat(20.00))
	contract := createTestContract(t, client.ID, contractor.ID, domain.ContractStatusInProgress)
	job := createTestJob(t, contract.ID, decimal.NewFromFloat(50.00), false, nil)

	t.Run("SuccessfulPayment", func(t *testing.T) {
		resp, body := makeRequest(t, "POST", fmt.Sprintf("/jobs/%d/pay", job.ID), client.ID, nil)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var responseMap map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(body), &responseMap))
		assert.Equal(t, "paid", responseMap["status"])

		assert.True(t, decimal.NewFromFloat(50.00).Equal(profileBalance(t, client.ID)), "Client balance should be 50.00")
		assert.True(t, decimal.NewFromFloat(70.00).Equal(profileBalance(t, contractor.ID)), "Contractor balance should be 70.00")
	})

	t.Run("SecondPaymentRejected", func(t *testing.T) {
		resp, body := makeRequest(t, "POST", fmt.Sprintf("/jobs/%d/pay", job.ID), client.ID, nil)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Contains(t, body, "job is already paid")
		assert.True(t, decimal.NewFromFloat(50.00).Equal(profileBalance(t, client.ID)), "Balance must be unchanged")
	})

	t.Run("ContractorCannotPay", func(t *testing.T) {
		unpaid := createTestJob(t, contract.ID, decimal.NewFromFloat(10.00), false, nil)
		resp, _ := makeRequest(t, "POST", fmt.Sprintf("/jobs/%d/pay", unpaid.ID), contractor.ID, nil)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("OtherClientCannotPay", func(t *testing.T) {
		other := createTestProfile(t, "Other", domain.RoleClient, decimal.NewFromFloat(500.00))
		unpaid := createTestJob(t, contract.ID, decimal.NewFromFloat(10.00), false, nil)
		resp, _ := makeRequest(t, "POST", fmt.Sprintf("/jobs/%d/pay", unpaid.ID), other.ID, nil)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("InsufficientFunds", func(t *testing.T) {
		expensive := createTestJob(t, contract.ID, decimal.NewFromFloat(10000.00), false, nil)
		resp, body := makeRequest(t, "POST", fmt.Sprintf("/jobs/%d/pay", expensive.ID), client.ID, nil)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Contains(t, body, "insufficient funds")
	})

	t.Run("MissingProfileHeader", func(t *testing.T) {
		resp, _ := makeRequest(t, "POST", fmt.Sprintf("/jobs/%d/pay", job.ID), 0, nil)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

// TestConcurrentPayments verifies that racing payments of the same job settle
// exactly once.
func TestConcurrentPayments(t *testing.T) {
	clearDatabase(t)
	client := createTestProfile(t, "Racer", domain.RoleClient, decimal.NewFromFloat(100.00))
	contractor := createTestProfile(t, "Raced", domain.RoleContractor, decimal.NewFromFloat(0.00))
	contract := createTestContract(t, client.ID, contractor.ID, domain.ContractStatusInProgress)
	job := createTestJob(t, contract.ID, decimal.NewFromFloat(40.00), false, nil)

	const attempts = 4
	statuses := make([]int, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req, err := http.NewRequest("POST", fmt.Sprintf("%s/jobs/%d/pay", testServer.URL, job.ID), nil)
			if err != nil {
				return
			}
			req.Header.Set("profile_id", fmt.Sprintf("%d", client.ID))
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				return
			}
			defer resp.Body.Close()
			io.Copy(io.Discard, resp.Body)
			statuses[i] = resp.StatusCode
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, status := range statuses {
		if status == http.StatusOK {
			successes++
		}
	}
	assert.Equal(t, 1, successes, "Exactly one payment attempt should succeed")

	assert.True(t, decimal.NewFromFloat(60.00).Equal(profileBalance(t, client.ID)), "Client should be debited exactly once")
	assert.True(t, decimal.NewFromFloat(40.00).Equal(profileBalance(t, contractor.ID)), "Contractor should be credited exactly once")
}

// TestDepositIntegration tests the balance deposit endpoint and its ceiling.
func TestDepositIntegration(t *testing.T) {
	clearDatabase(t)
	client := createTestProfile(t, "Depositor", domain.RoleClient, decimal.NewFromFloat(100.00))
	contractor := createTestProfile(t, "Builder", domain.RoleContractor, decimal.NewFromFloat(0.00))
	contract := createTestContract(t, client.ID, contractor.ID, domain.ContractStatusInProgress)
	// Unpaid total 200.00, so the deposit ceiling is 50.00.
	createTestJob(t, contract.ID, decimal.NewFromFloat(120.00), false, nil)
	createTestJob(t, contract.ID, decimal.NewFromFloat(80.00), false, nil)

	t.Run("DepositAboveCeiling", func(t *testing.T) {
		resp, body := makeRequest(t, "POST", fmt.Sprintf("/balances/deposit/%d", client.ID), client.ID, strings.NewReader(`{"amount": "51.00"}`))
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		var responseMap map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(body), &responseMap))
		assert.Equal(t, "50.00", responseMap["suggested_max"])
		assert.True(t, decimal.NewFromFloat(100.00).Equal(profileBalance(t, client.ID)), "Balance must be unchanged")
	})

	t.Run("DepositAtCeiling", func(t *testing.T) {
		resp, body := makeRequest(t, "POST", fmt.Sprintf("/balances/deposit/%d", client.ID), client.ID, strings.NewReader(`{"amount": "50.00"}`))
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var responseMap map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(body), &responseMap))
		payload := responseMap["payload"].(map[string]interface{})
		newBalance, err := decimal.NewFromString(payload["balance"].(string))
		require.NoError(t, err)
		assert.True(t, decimal.NewFromFloat(150.00).Equal(newBalance), "New balance should be 150.00")
	})

	t.Run("DepositToOtherProfile", func(t *testing.T) {
		resp, _ := makeRequest(t, "POST", fmt.Sprintf("/balances/deposit/%d", contractor.ID), client.ID, strings.NewReader(`{"amount": "10.00"}`))
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("ContractorCannotDeposit", func(t *testing.T) {
		resp, _ := makeRequest(t, "POST", fmt.Sprintf("/balances/deposit/%d", contractor.ID), contractor.ID, strings.NewReader(`{"amount": "10.00"}`))
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

// TestContractVisibilityIntegration tests contract listing and ownership checks.
func TestContractVisibilityIntegration(t *testing.T) {
	clearDatabase(t)
	client := createTestProfile(t, "Owner", domain.RoleClient, decimal.NewFromFloat(0.00))
	contractor := createTestProfile(t, "Counterparty", domain.RoleContractor, decimal.NewFromFloat(0.00))
	outsider := createTestProfile(t, "Outsider", domain.RoleClient, decimal.NewFromFloat(0.00))

	active := createTestContract(t, client.ID, contractor.ID, domain.ContractStatusInProgress)
	createTestContract(t, client.ID, contractor.ID, domain.ContractStatusTerminated)

	t.Run("GetContractAsClient", func(t *testing.T) {
		resp, body := makeRequest(t, "GET", fmt.Sprintf("/contracts/%d", active.ID), client.ID, nil)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var contract domain.Contract
		require.NoError(t, json.Unmarshal([]byte(body), &contract))
		assert.Equal(t, active.ID, contract.ID)
	})

	t.Run("GetContractAsContractor", func(t *testing.T) {
		resp, _ := makeRequest(t, "GET", fmt.Sprintf("/contracts/%d", active.ID), contractor.ID, nil)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("GetContractAsOutsider", func(t *testing.T) {
		resp, _ := makeRequest(t, "GET", fmt.Sprintf("/contracts/%d", active.ID), outsider.ID, nil)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("GetMissingContract", func(t *testing.T) {
		resp, _ := makeRequest(t, "GET", "/contracts/9999", client.ID, nil)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("ListExcludesTerminated", func(t *testing.T) {
		resp, body := makeRequest(t, "GET", "/contracts", client.ID, nil)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var contracts []domain.Contract
		require.NoError(t, json.Unmarshal([]byte(body), &contracts))
		require.Len(t, contracts, 1)
		assert.Equal(t, active.ID, contracts[0].ID)
	})
}

// TestUnpaidJobsIntegration tests the unpaid jobs listing.
func TestUnpaidJobsIntegration(t *testing.T) {
	clearDatabase(t)
	client := createTestProfile(t, "Lister", domain.RoleClient, decimal.NewFromFloat(0.00))
	contractor := createTestProfile(t, "Listed", domain.RoleContractor, decimal.NewFromFloat(0.00))

	active := createTestContract(t, client.ID, contractor.ID, domain.ContractStatusInProgress)
	terminated := createTestContract(t, client.ID, contractor.ID, domain.ContractStatusTerminated)

	paidAt := time.Now().UTC()
	unpaid := createTestJob(t, active.ID, decimal.NewFromFloat(10.00), false, nil)
	createTestJob(t, active.ID, decimal.NewFromFloat(20.00), true, &paidAt)
	createTestJob(t, terminated.ID, decimal.NewFromFloat(30.00), false, nil)

	resp, body := makeRequest(t, "GET", "/jobs/unpaid", client.ID, nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var jobs []domain.Job
	require.NoError(t, json.Unmarshal([]byte(body), &jobs))
	require.Len(t, jobs, 1)
	assert.Equal(t, unpaid.ID, jobs[0].ID)
}

// TestAdminReportsIntegration tests the aggregate report endpoints.
func TestAdminReportsIntegration(t *testing.T) {
	clearDatabase(t)
	client1 := createTestProfile(t, "Spender", domain.RoleClient, decimal.NewFromFloat(1000.00))
	client2 := createTestProfile(t, "Saver", domain.RoleClient, decimal.NewFromFloat(1000.00))
	programmer := createTestProfile(t, "Coder", domain.RoleContractor, decimal.NewFromFloat(0.00))
	musician := createTestProfile(t, "Singer", domain.RoleContractor, decimal.NewFromFloat(0.00))

	_, err := testApp.DB.Exec("UPDATE profiles SET profession = 'programmer' WHERE id = $1", programmer.ID)
	require.NoError(t, err)
	_, err = testApp.DB.Exec("UPDATE profiles SET profession = 'musician' WHERE id = $1", musician.ID)
	require.NoError(t, err)

	c1 := createTestContract(t, client1.ID, programmer.ID, domain.ContractStatusInProgress)
	c2 := createTestContract(t, client2.ID, musician.ID, domain.ContractStatusInProgress)

	paidAt := time.Date(2020, 8, 15, 12, 0, 0, 0, time.UTC)
	createTestJob(t, c1.ID, decimal.NewFromFloat(300.00), true, &paidAt)
	createTestJob(t, c2.ID, decimal.NewFromFloat(100.00), true, &paidAt)
	outside := time.Date(2021, 1, 1, 12, 0, 0, 0, time.UTC)
	createTestJob(t, c2.ID, decimal.NewFromFloat(900.00), true, &outside)

	t.Run("BestProfession", func(t *testing.T) {
		resp, body := makeRequest(t, "GET", "/admin/best-profession?start=2020-08-01&end=2020-08-31", client1.ID, nil)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var report domain.ProfessionEarnings
		require.NoError(t, json.Unmarshal([]byte(body), &report))
		assert.Equal(t, "programmer", report.Profession)
		assert.True(t, decimal.NewFromFloat(300.00).Equal(report.Earned))
	})

	t.Run("BestProfessionEmptyRange", func(t *testing.T) {
		resp, _ := makeRequest(t, "GET", "/admin/best-profession?start=2019-01-01&end=2019-12-31", client1.ID, nil)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("BestProfessionMissingDates", func(t *testing.T) {
		resp, _ := makeRequest(t, "GET", "/admin/best-profession", client1.ID, nil)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("BestClients", func(t *testing.T) {
		resp, body := makeRequest(t, "GET", "/admin/best-clients?start=2020-08-01&end=2020-08-31&limit=1", client1.ID, nil)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var clients []domain.ClientSpending
		require.NoError(t, json.Unmarshal([]byte(body), &clients))
		require.Len(t, clients, 1)
		assert.Equal(t, client1.ID, clients[0].ID)
		assert.True(t, decimal.NewFromFloat(300.00).Equal(clients[0].Paid))
	})
}
