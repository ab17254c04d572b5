package pxtest

// SimpleDocument is a well-formed two-dimensional table: one stub
// dimension (area, 3 members), one heading dimension (year, 2 members),
// 6 cells with the last one missing.
const SimpleDocument = `CHARSET="ANSI";
AXIS-VERSION="2000";
LANGUAGE="en";
TITLE="Population by area";
UNITS="persons";
STUB="area";
HEADING="year";
VALUES("area")="North","South","East";
VALUES("year")="2020","2021";
SOURCE="Statistics Office";
DATA=
101 104
52 55
31 ..;
`

// ThreeDimDocument crosses two stub dimensions with one heading
// dimension: 2 regions x 2 genders x 3 years = 12 cells.
const ThreeDimDocument = `CHARSET="ANSI";
TITLE="Population by region, gender and year";
UNITS="persons";
STUB="region","gender";
HEADING="year";
VALUES("region")="Uusimaa","Lapland";
VALUES("gender")="Male","Female";
VALUES("year")="2019","2020","2021";
DATA=
831557 838420 845098
863690 870871 877592
89771 89396 88985
88641 88234 87858;
`

// ScalarDocument declares no dimensions at all, so its data block is a
// single cell (the empty cartesian product has one combination).
const ScalarDocument = `TITLE="Total population";
UNITS="persons";
DATA=
5536146;
`

// QuotedDocument exercises quoting: a title containing ";" and "=", and
// a value continued across a line break (line breaks become spaces,
// inside quotes or not).
const QuotedDocument = `TITLE="Energy; imports=exports balance";
NOTE="Continues
across lines";
STUB="fuel";
HEADING="year";
VALUES("fuel")="Coal","Oil";
VALUES("year")="2020";
DATA=
7 9;
`

// NoDataDocument has no DATA= marker and fails as a malformed document.
const NoDataDocument = `TITLE="No data section";
STUB="area";
VALUES("area")="North";
`

// MissingValuesDocument names a stub dimension without declaring its
// member list and fails with a missing-dimension-values error.
const MissingValuesDocument = `TITLE="Broken dimensions";
STUB="area";
HEADING="year";
VALUES("year")="2020";
DATA=
1 2;
`

// MismatchDocument declares a 2x2 table but carries three cells and
// fails with a count-mismatch error.
const MismatchDocument = `TITLE="Short data block";
STUB="area";
HEADING="year";
VALUES("area")="North","South";
VALUES("year")="2020","2021";
DATA=
1 2 3;
`
