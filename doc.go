/*
Package gradebook-sheets records assignment results in a grade-tracking Google Sheets worksheet.

gradebook-sheets can be used from the command line but is really intended to be run once per student and
assignment from a CI pipeline, configured entirely from the environment.

gradebook-sheets supports the following commands:

  - update, to write a result for a student and assignment, creating the student row and assignment column if required
  - get, to download a Google Sheets worksheet as a TSV or XLSX file
  - put, to store a TSV file to a Google Sheets worksheet
  - results, to decode and display a base64 encoded test results payload
  - version, to display the current version
*/
package gradebook
