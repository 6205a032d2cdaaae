package postgres

const accountColumns = `"Id", "IdNumber", "FullName", "Username", "Password", "Section", "Role"`

const listAccountsSQL = `SELECT ` + accountColumns + ` FROM "UserAccounts"`

const countAccountsSQL = `SELECT COUNT(*) FROM "UserAccounts"`

const getAccountSQL = `
SELECT ` + accountColumns + `
FROM "UserAccounts" WHERE "Id" = $1
`

const insertAccountSQL = `
INSERT INTO "UserAccounts" ("IdNumber", "FullName", "Username", "Password", "Section", "Role")
VALUES ($1,$2,$3,$4,$5,$6)
RETURNING ` + accountColumns

const updateAccountSQL = `
UPDATE "UserAccounts" SET
  "IdNumber"=$2, "FullName"=$3, "Username"=$4, "Password"=$5, "Section"=$6, "Role"=$7
WHERE "Id"=$1
RETURNING ` + accountColumns

const deleteAccountSQL = `
DELETE FROM "UserAccounts" WHERE "Id"=$1
RETURNING ` + accountColumns
