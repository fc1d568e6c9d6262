// ABOUTME: Company CLI commands
// ABOUTME: Human-friendly commands for managing companies and their members
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/opsdeck/opsdeck/db"
	"github.com/opsdeck/opsdeck/models"
)

// AddCompanyCommand adds a new company
func AddCompanyCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("add-company", flag.ExitOnError)
	name := fs.String("name", "", "Company name (required)")
	owner := fs.String("owner", "", "Owner name")
	email := fs.String("email", "", "Contact email")
	phone := fs.String("phone", "", "Contact phone")
	country := fs.String("country", "", "Country")
	status := fs.String("status", models.StatusActive, "Status (active, inactive, draft)")
	fs.Parse(args)

	if *name == "" {
		return fmt.Errorf("--name is required")
	}

	company := &models.Company{
		Name:      *name,
		OwnerName: *owner,
		Email:     *email,
		Phone:     *phone,
		Country:   *country,
		Status:    *status,
	}

	if err := db.CreateCompany(database, company); err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}

	fmt.Printf("✓ Company created: %s (ID: %s)\n", company.Name, company.ID)
	if company.Country != "" {
		fmt.Printf("  Country: %s\n", company.Country)
	}

	return nil
}

// ListCompaniesCommand lists companies with optional search
func ListCompaniesCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("list-companies", flag.ExitOnError)
	query := fs.String("query", "", "Search by name or email")
	limit := fs.Int("limit", 50, "Maximum results")
	fs.Parse(args)

	companies, err := db.FindCompanies(database, *query, *limit)
	if err != nil {
		return fmt.Errorf("failed to find companies: %w", err)
	}

	if len(companies) == 0 {
		fmt.Println("No companies found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tOWNER\tCOUNTRY\tSTATUS\tID")
	fmt.Fprintln(w, "----\t-----\t-------\t------\t--")

	for _, company := range companies {
		owner := company.OwnerName
		if owner == "" {
			owner = "-"
		}
		country := company.Country
		if country == "" {
			country = "-"
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			company.Name, owner, country, company.Status, company.ID.String()[:8])
	}
	w.Flush()

	fmt.Printf("\nTotal: %d company(ies)\n", len(companies))
	return nil
}

// UpdateCompanyCommand updates fields on an existing company
func UpdateCompanyCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("update-company", flag.ExitOnError)
	id := fs.String("id", "", "Company ID (required)")
	name := fs.String("name", "", "New name")
	owner := fs.String("owner", "", "New owner name")
	email := fs.String("email", "", "New contact email")
	phone := fs.String("phone", "", "New contact phone")
	country := fs.String("country", "", "New country")
	status := fs.String("status", "", "New status")
	fs.Parse(args)

	if *id == "" {
		return fmt.Errorf("--id is required")
	}
	companyID, err := uuid.Parse(*id)
	if err != nil {
		return fmt.Errorf("invalid company ID: %w", err)
	}

	company, err := db.GetCompany(database, companyID)
	if err != nil {
		return fmt.Errorf("failed to get company: %w", err)
	}
	if company == nil {
		return fmt.Errorf("company not found: %s", *id)
	}

	if *name != "" {
		company.Name = *name
	}
	if *owner != "" {
		company.OwnerName = *owner
	}
	if *email != "" {
		company.Email = *email
	}
	if *phone != "" {
		company.Phone = *phone
	}
	if *country != "" {
		company.Country = *country
	}
	if *status != "" {
		company.Status = *status
	}

	if err := db.UpdateCompany(database, companyID, company); err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}

	fmt.Printf("✓ Company updated: %s\n", company.Name)
	return nil
}

// DeleteCompanyCommand removes a company and its members
func DeleteCompanyCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("delete-company", flag.ExitOnError)
	id := fs.String("id", "", "Company ID (required)")
	fs.Parse(args)

	if *id == "" {
		return fmt.Errorf("--id is required")
	}
	companyID, err := uuid.Parse(*id)
	if err != nil {
		return fmt.Errorf("invalid company ID: %w", err)
	}

	if err := db.DeleteCompany(database, companyID); err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}

	fmt.Printf("✓ Company deleted: %s\n", *id)
	return nil
}

// AddMemberCommand adds a member to a company
func AddMemberCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("add-member", flag.ExitOnError)
	companyID := fs.String("company", "", "Company ID (required)")
	name := fs.String("name", "", "Member name (required)")
	email := fs.String("email", "", "Member email")
	role := fs.String("role", "", "Member role")
	fs.Parse(args)

	if *companyID == "" || *name == "" {
		return fmt.Errorf("--company and --name are required")
	}
	cid, err := uuid.Parse(*companyID)
	if err != nil {
		return fmt.Errorf("invalid company ID: %w", err)
	}

	company, err := db.GetCompany(database, cid)
	if err != nil {
		return fmt.Errorf("failed to get company: %w", err)
	}
	if company == nil {
		return fmt.Errorf("company not found: %s", *companyID)
	}

	member := &models.Member{
		CompanyID: cid,
		Name:      *name,
		Email:     *email,
		Role:      *role,
	}
	if err := db.CreateMember(database, member); err != nil {
		return fmt.Errorf("failed to create member: %w", err)
	}

	fmt.Printf("✓ Member added to %s: %s (ID: %s)\n", company.Name, member.Name, member.ID)
	return nil
}

// ListMembersCommand lists the members of a company
func ListMembersCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("list-members", flag.ExitOnError)
	companyID := fs.String("company", "", "Company ID (required)")
	fs.Parse(args)

	if *companyID == "" {
		return fmt.Errorf("--company is required")
	}
	cid, err := uuid.Parse(*companyID)
	if err != nil {
		return fmt.Errorf("invalid company ID: %w", err)
	}

	members, err := db.ListCompanyMembers(database, cid)
	if err != nil {
		return fmt.Errorf("failed to list members: %w", err)
	}

	if len(members) == 0 {
		fmt.Println("No members found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tEMAIL\tROLE\tID")
	fmt.Fprintln(w, "----\t-----\t----\t--")

	for _, member := range members {
		email := member.Email
		if email == "" {
			email = "-"
		}
		role := member.Role
		if role == "" {
			role = "-"
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", member.Name, email, role, member.ID.String()[:8])
	}
	w.Flush()

	fmt.Printf("\nTotal: %d member(s)\n", len(members))
	return nil
}
