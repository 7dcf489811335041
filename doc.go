/*
Package appinfo reads Steam's binary appinfo cache (appinfo.vdf) and
extracts single app records without decoding the whole file.

Data Structure Documentation

File

A file contains a fixed header followed by a run of entries, a zero
terminator and the key table. The header stores the absolute offset
of the key table, so the table must be loaded before any entry can
be decoded.

    File layout:
    +--------+---------+-----+---------+-------------------+-----------+
    | header | entry 1 | ... | entry n | zero app id (4 B) | key table |
    +--------+---------+-----+---------+-------------------+-----------+

    Header:
    +------------------+---------------------+----------------------------------+
    | magic (4 bytes)  | universe (4 bytes)  | key table offset (8 bytes, int)  |
    +------------------+---------------------+----------------------------------+

    Key table:
    +-------------------------+------------------------+-----+------------------------+
    | key count (4 bytes,int) | key 0 (zero-terminated)| ... | key n (zero-terminated)|
    +-------------------------+------------------------+-----+------------------------+

Entry

Each entry starts with a fixed 68 byte header. The size field counts every
byte following it, the payload is therefore size-60 bytes long.

    Entry header:
    +--------+------+------------+--------------+--------------+------+---------------+-------------+
    | app id | size | info state | last updated | access token | sha1 | change number | payload sha1|
    |   4 B  |  4 B |     4 B    |      4 B     |      8 B     | 20 B |      4 B      |     20 B    |
    +--------+------+------------+--------------+--------------+------+---------------+-------------+

Payload

A payload is a sequence of tagged key/value pairs terminated by an end tag.
Keys are 4 byte indices into the key table.

    +-----------+--------------+-------------------------------+-----+------------+
    | tag (1 B) | key (4 B)    | value                         | ... | 0x08 (end) |
    +-----------+--------------+-------------------------------+-----+------------+

    0x00  nested object, value is another pair sequence with its own end tag
    0x01  zero-terminated UTF-8 string
    0x02  32-bit signed integer

All integers are little-endian.
*/
package appinfo
